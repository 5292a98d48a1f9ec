package tagset_test

import "github.com/QnnOkabayashi/tracing-tests/tagset"

type fakeTag uint64

func (t fakeTag) Pretty() string { return "fake.tag" }
func (t fakeTag) Emoji() string  { return "🏷" }
func (t fakeTag) ID() uint64     { return uint64(t) }

type fakeDecoder struct{}

func (fakeDecoder) Decode(id uint64) (tagset.TagSet, bool) {
	if id != 1 {
		return nil, false
	}
	return fakeTag(1), true
}

var _ tagset.Decoder = fakeDecoder{}
var _ tagset.TagSet = fakeTag(0)
