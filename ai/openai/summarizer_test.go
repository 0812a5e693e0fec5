package openai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(model *fakeModel, opts ...ai.ConfigOption) *Provider {
	cfg := ai.NewConfig(opts...)
	return newProvider(cfg, model)
}

func TestClientSummarizer(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes every field", func(t *testing.T) {
		model := &fakeModel{reply: `{"catchphrase":"DXで生産性向上","merit":"最大250万円","target":"県内中小企業","amount":"250万円","deadline":"2025-12-31"}`}
		p := newTestProvider(model)

		got, err := p.ClientSummarizer().SummarizeForClient(ctx, "https://example.jp/dx", "本文")
		require.NoError(t, err)
		assert.Equal(t, core.ClientSummary{
			Catchphrase: "DXで生産性向上",
			Merit:       "最大250万円",
			Target:      "県内中小企業",
			Amount:      "250万円",
			Deadline:    "2025-12-31",
		}, got)

		call := model.lastCall()
		assert.Equal(t, 0.3, call.options.Temperature)
		assert.True(t, call.options.JSONMode)
		assert.Contains(t, call.humanText(), "https://example.jp/dx")
	})

	t.Run("empty strings are accepted", func(t *testing.T) {
		model := &fakeModel{reply: `{"catchphrase":"","merit":"","target":"","amount":"","deadline":""}`}
		p := newTestProvider(model)

		got, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		require.NoError(t, err)
		assert.Equal(t, core.ClientSummary{}, got)
	})

	t.Run("missing field is malformed", func(t *testing.T) {
		model := &fakeModel{reply: `{"catchphrase":"x","merit":"y","target":"z","amount":"w"}`}
		p := newTestProvider(model)

		_, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "deadline")
	})

	t.Run("non-json reply is malformed", func(t *testing.T) {
		model := &fakeModel{reply: "申し訳ありませんが、要約できません。"}
		p := newTestProvider(model)

		_, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
	})

	t.Run("code fences are stripped", func(t *testing.T) {
		model := &fakeModel{reply: "```json\n{\"catchphrase\":\"a\",\"merit\":\"b\",\"target\":\"c\",\"amount\":\"d\",\"deadline\":\"e\"}\n```"}
		p := newTestProvider(model)

		got, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		require.NoError(t, err)
		assert.Equal(t, "a", got.Catchphrase)
	})

	t.Run("content is truncated", func(t *testing.T) {
		model := &fakeModel{reply: `{"catchphrase":"","merit":"","target":"","amount":"","deadline":""}`}
		p := newTestProvider(model)

		long := strings.Repeat("補", ai.ClientContentLimit+500)
		_, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", long)
		require.NoError(t, err)
		assert.Equal(t, ai.ClientContentLimit, strings.Count(model.lastCall().humanText(), "補"))
	})

	t.Run("transport error is returned", func(t *testing.T) {
		boom := errors.New("connection refused")
		p := newTestProvider(&fakeModel{err: boom})

		_, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no choices", func(t *testing.T) {
		p := newTestProvider(&fakeModel{noChoice: true})

		_, err := p.ClientSummarizer().SummarizeForClient(ctx, "u", "c")
		assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	})
}

func TestAccountantSummarizer(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes every field", func(t *testing.T) {
		model := &fakeModel{reply: `{"overview":"概要","requirements":"要件","expenses":"経費","pitfalls":"注意"}`}
		p := newTestProvider(model)

		got, err := p.AccountantSummarizer().SummarizeForAccountant(ctx, "u", "c")
		require.NoError(t, err)
		assert.Equal(t, core.AccountantSummary{Overview: "概要", Requirements: "要件", Expenses: "経費", Pitfalls: "注意"}, got)
		assert.Equal(t, 0.1, model.lastCall().options.Temperature)
	})

	t.Run("ill-typed field is malformed", func(t *testing.T) {
		model := &fakeModel{reply: `{"overview":"a","requirements":["x"],"expenses":"c","pitfalls":"d"}`}
		p := newTestProvider(model)

		_, err := p.AccountantSummarizer().SummarizeForAccountant(ctx, "u", "c")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
	})

	t.Run("content limit is larger than client", func(t *testing.T) {
		model := &fakeModel{reply: `{"overview":"","requirements":"","expenses":"","pitfalls":""}`}
		p := newTestProvider(model)

		long := strings.Repeat("税", ai.AccountantContentLimit+1)
		_, err := p.AccountantSummarizer().SummarizeForAccountant(ctx, "u", long)
		require.NoError(t, err)
		assert.Equal(t, ai.AccountantContentLimit, strings.Count(model.lastCall().humanText(), "税"))
	})
}

func TestIndustryTagger(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tags verbatim", func(t *testing.T) {
		model := &fakeModel{reply: `{"industry_tags":["製造業","IT・情報通信","全業種対象"]}`}
		p := newTestProvider(model)

		got, err := p.IndustryTagger().TagIndustries(ctx, "ものづくりDX支援補助金", "本文")
		require.NoError(t, err)
		assert.Equal(t, []string{"製造業", "IT・情報通信", "全業種対象"}, got)
		assert.Contains(t, model.lastCall().humanText(), "ものづくりDX支援補助金")
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		p := newTestProvider(&fakeModel{reply: `{"industry_tags":[]}`})

		got, err := p.IndustryTagger().TagIndustries(ctx, "n", "c")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing key is malformed", func(t *testing.T) {
		p := newTestProvider(&fakeModel{reply: `{"tags":["製造業"]}`})

		_, err := p.IndustryTagger().TagIndustries(ctx, "n", "c")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
	})

	t.Run("unquoted key is repaired", func(t *testing.T) {
		p := newTestProvider(&fakeModel{reply: `{industry_tags: ["小売業"]}`})

		got, err := p.IndustryTagger().TagIndustries(ctx, "n", "c")
		require.NoError(t, err)
		assert.Equal(t, []string{"小売業"}, got)
	})
}

func TestRequestTimeout(t *testing.T) {
	ctx := context.Background()
	reply := `{"industry_tags":[]}`

	t.Run("timeout sets a deadline", func(t *testing.T) {
		model := &fakeModel{reply: reply}
		p := newTestProvider(model, ai.WithRequestTimeout(time.Second))

		_, err := p.IndustryTagger().TagIndustries(ctx, "n", "c")
		require.NoError(t, err)
		assert.True(t, model.lastCall().deadline)
	})

	t.Run("zero timeout leaves context alone", func(t *testing.T) {
		model := &fakeModel{reply: reply}
		p := newTestProvider(model, ai.WithRequestTimeout(0))

		_, err := p.IndustryTagger().TagIndustries(ctx, "n", "c")
		require.NoError(t, err)
		assert.False(t, model.lastCall().deadline)
	})
}

func TestNewProviderValidates(t *testing.T) {
	_, err := NewProvider(ai.NewConfig(ai.WithModel("")))
	assert.ErrorIs(t, err, ai.ErrModelRequired)

	_, err = NewProvider(ai.NewConfig(ai.WithHost("")))
	assert.ErrorIs(t, err, ai.ErrHostRequired)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "神奈川", truncateRunes("神奈川県", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "abc", truncateRunes("abc", 0))
	assert.True(t, utf8.ValidString(truncateRunes("補助金の申請", 2)))
}

func TestPlainText(t *testing.T) {
	html := `<html><head><style>p{}</style><script>var x;</script></head>
<body><h1>ものづくり補助金</h1>
<p>最大 <b>250万円</b></p></body></html>`

	got := plainText(html)
	assert.Contains(t, got, "ものづくり補助金")
	assert.Contains(t, got, "250万円")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, "var x")

	assert.Equal(t, "プレーンテキスト", plainText("  プレーンテキスト  "))
}
