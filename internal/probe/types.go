// Package probe extracts structural metadata from local media files by
// invoking ffprobe and modeling its JSON output. A probe is lazy and
// memoized: the external tool runs at most once per Probe instance, and a
// missing tool or unparsable output degrades to empty metadata instead of
// surfacing an error.
package probe

import "strconv"

// Format holds container-level attributes as reported by ffprobe.
// Numeric fields arrive as strings on the wire; accessors parse them.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	NBStreams      int    `json:"nb_streams"`
	DurationRaw    string `json:"duration"`
	SizeRaw        string `json:"size"`
	BitRateRaw     string `json:"bit_rate"`
}

// Duration returns the container duration in seconds, or 0 when unknown.
func (f Format) Duration() float64 {
	v, _ := strconv.ParseFloat(f.DurationRaw, 64)
	return v
}

// Size returns the file size in bytes, or 0 when unknown.
func (f Format) Size() int64 {
	v, _ := strconv.ParseInt(f.SizeRaw, 10, 64)
	return v
}

// BitRate returns the overall bit rate in bits per second, or 0 when unknown.
func (f Format) BitRate() int64 {
	v, _ := strconv.ParseInt(f.BitRateRaw, 10, 64)
	return v
}

// Stream describes one media stream within the container.
type Stream struct {
	Index          int    `json:"index"`
	CodecType      string `json:"codec_type"`
	CodecName      string `json:"codec_name"`
	CodecLongName  string `json:"codec_long_name"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	BitsPerSample  string `json:"bits_per_raw_sample"`
	Channels       int    `json:"channels"`
	SampleRateRaw  string `json:"sample_rate"`
	DurationRaw    string `json:"duration"`
	BitRateRaw     string `json:"bit_rate"`
}

// BitDepth returns the video bit depth, or 0 when unknown.
func (s Stream) BitDepth() int {
	v, _ := strconv.Atoi(s.BitsPerSample)
	return v
}

// SampleRate returns the audio sample rate in Hz, or 0 when unknown.
func (s Stream) SampleRate() int {
	v, _ := strconv.Atoi(s.SampleRateRaw)
	return v
}

// output mirrors the top-level ffprobe JSON document.
type output struct {
	Format  Format   `json:"format"`
	Streams []Stream `json:"streams"`
}
