package ai

import "errors"

// Content limits, in runes, applied to page content before it is sent to a model.
const (
	ClientContentLimit     = 8000
	AccountantContentLimit = 12000
	TaggingContentLimit    = 5000
)

// AllIndustriesTag marks a subsidy open to every industry.
const AllIndustriesTag = "全業種対象"

// SuggestedTags lists the tags the tagger is steered towards. Models may
// still return tags outside this list; they are kept as returned.
var SuggestedTags = []string{
	AllIndustriesTag,
	"製造業",
	"IT・情報通信",
	"小売業",
	"飲食業",
	"建設業",
	"運輸業",
	"医療・福祉",
	"観光・宿泊",
	"農林水産業",
	"サービス業",
	"スタートアップ",
}

var (
	// ErrMalformedResponse indicates a model response was not the expected
	// JSON object or lacked a required field.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("empty model response")
)
