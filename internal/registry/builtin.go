package registry

// builtins is the shipped service set. Widths and ratios follow each
// provider's embed defaults; services without an explicit ratio fall back
// to 4:3.
//
// metacafe's template references {url} because its identifier must first be
// resolved to a playback URL (see the embed package's service handlers);
// peertube's identifier carries the instance host and is decomposed before
// substitution.
var builtins = map[string]Profile{
	"youtube": {
		URLTemplate:  "https://www.youtube-nocookie.com/embed/{id}",
		DefaultWidth: 425,
		RatioW:       16, RatioH: 9,
	},
	"vimeo": {
		URLTemplate:  "https://player.vimeo.com/video/{id}",
		DefaultWidth: 425,
		RatioW:       16, RatioH: 9,
	},
	"dailymotion": {
		URLTemplate:  "https://www.dailymotion.com/embed/video/{id}",
		DefaultWidth: 425,
	},
	"archive": {
		URLTemplate:  "https://archive.org/embed/{id}",
		DefaultWidth: 480,
	},
	"peertube": {
		URLTemplate:  "https://{host}/videos/embed/{uuid}",
		DefaultWidth: 560,
		RatioW:       16, RatioH: 9,
	},
	"metacafe": {
		Extern: `<object width="{width}" height="{height}" data="{url}">` +
			`<param name="movie" value="{url}"/>` +
			`<param name="allowFullScreen" value="true"/>` +
			`<embed src="{base}/player.swf?file={url}" width="{width}" height="{height}"/>` +
			`</object>`,
		DefaultWidth: 400,
	},
}
