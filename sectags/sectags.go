// Package sectags is a concrete, example TagSet covering the five domains
// named in the glossary (admin, request, security, filter, perf) crossed
// with severity. It demonstrates the tagset.TagSet / tagset.Decoder wire
// contract; applications are free to supply their own.
package sectags

import "github.com/QnnOkabayashi/tracing-tests/tagset"

// Tag is one member of the example tag set.
type Tag uint64

const (
	AdminError Tag = iota
	AdminWarn
	AdminInfo
	RequestError
	RequestWarn
	RequestInfo
	RequestTrace
	SecurityCritical
	SecurityInfo
	SecurityAccess
	FilterError
	FilterWarn
	FilterInfo
	FilterTrace
	PerfTrace
)

var pretty = map[Tag]string{
	AdminError:       "admin.error",
	AdminWarn:        "admin.warn",
	AdminInfo:        "admin.info",
	RequestError:     "request.error",
	RequestWarn:      "request.warn",
	RequestInfo:      "request.info",
	RequestTrace:     "request.trace",
	SecurityCritical: "security.critical",
	SecurityInfo:     "security.info",
	SecurityAccess:   "security.access",
	FilterError:      "filter.error",
	FilterWarn:       "filter.warn",
	FilterInfo:       "filter.info",
	FilterTrace:      "filter.trace",
	PerfTrace:        "perf.trace",
}

var emoji = map[Tag]string{
	AdminError:       "🚨",
	RequestError:     "🚨",
	FilterError:      "🚨",
	AdminWarn:        "🚧",
	RequestWarn:      "🚧",
	FilterWarn:       "🚧",
	AdminInfo:        "💬",
	RequestInfo:      "💬",
	SecurityInfo:     "💬",
	FilterInfo:       "💬",
	RequestTrace:     "📍",
	FilterTrace:      "📍",
	PerfTrace:        "📍",
	SecurityCritical: "🔐",
	SecurityAccess:   "🔓",
}

// Pretty implements tagset.TagSet.
func (t Tag) Pretty() string { return pretty[t] }

// Emoji implements tagset.TagSet.
func (t Tag) Emoji() string { return emoji[t] }

// ID implements tagset.TagSet.
func (t Tag) ID() uint64 { return uint64(t) }

// Decoder decodes the numeric ids assigned above.
type decoder struct{}

// Decode implements tagset.Decoder.
func (decoder) Decode(id uint64) (tagset.TagSet, bool) {
	if _, ok := pretty[Tag(id)]; !ok {
		return nil, false
	}
	return Tag(id), true
}

// Decoder is the package-level tagset.Decoder for Tag.
var Decoder tagset.Decoder = decoder{}

var (
	_ tagset.TagSet = Tag(0)
)
