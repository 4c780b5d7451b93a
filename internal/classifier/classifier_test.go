package classifier_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/justext/internal/classifier"
	"github.com/rohmanhakim/justext/internal/paragraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStopwords = map[string]struct{}{"the": {}, "and": {}, "of": {}}

func newParagraph(domPath string, text string, linkChars int) *paragraph.Paragraph {
	p := paragraph.New(domPath, "/"+strings.ReplaceAll(domPath, ".", "[1]/")+"[1]")
	p.AppendText(text)
	p.CharsCountInLinks = linkChars
	return p
}

// repeat builds "w w w ... w" with n words.
func repeat(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestDefaultParams(t *testing.T) {
	p := classifier.DefaultParams()

	assert.Equal(t, 70, p.LengthLow)
	assert.Equal(t, 200, p.LengthHigh)
	assert.InDelta(t, 0.30, p.StopwordsLow, 1e-9)
	assert.InDelta(t, 0.32, p.StopwordsHigh, 1e-9)
	assert.InDelta(t, 0.20, p.MaxLinkDensity, 1e-9)
	assert.Equal(t, 200, p.MaxHeadingDistance)
	assert.False(t, p.NoHeadings)
	assert.NoError(t, p.Validate())
}

func TestLanguageIndependent(t *testing.T) {
	p := classifier.DefaultParams().LanguageIndependent()

	assert.Zero(t, p.StopwordsLow)
	assert.Zero(t, p.StopwordsHigh)
	assert.Equal(t, 70, p.LengthLow)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *classifier.Params)
	}{
		{"negative length", func(p *classifier.Params) { p.LengthLow = -1 }},
		{"low above high length", func(p *classifier.Params) { p.LengthLow = 300 }},
		{"low above high stopwords", func(p *classifier.Params) { p.StopwordsLow = 0.5 }},
		{"stopwords above one", func(p *classifier.Params) { p.StopwordsHigh = 1.5 }},
		{"negative link density", func(p *classifier.Params) { p.MaxLinkDensity = -0.1 }},
		{"link density above one", func(p *classifier.Params) { p.MaxLinkDensity = 1.1 }},
		{"negative heading distance", func(p *classifier.Params) { p.MaxHeadingDistance = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := classifier.DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), classifier.ErrInvalidParams)
		})
	}
}

func TestClassifyParagraphs_Rules(t *testing.T) {
	longGood := repeat("the word", 30)   // 269 chars, density 0.5
	mediumGood := repeat("the word", 10) // 89 chars, density 0.5
	noStopwords := repeat("alpha beta", 20)

	tests := []struct {
		name      string
		domPath   string
		text      string
		linkChars int
		params    classifier.Params
		want      paragraph.Class
	}{
		{"long with stopwords is good", "html.body.p", longGood, 0, classifier.DefaultParams(), paragraph.ClassGood},
		{"medium with stopwords is neargood", "html.body.p", mediumGood, 0, classifier.DefaultParams(), paragraph.ClassNearGood},
		{"no stopwords is bad", "html.body.p", noStopwords, 0, classifier.DefaultParams(), paragraph.ClassBad},
		{"short without links", "html.body.p", "Hi there", 0, classifier.DefaultParams(), paragraph.ClassShort},
		{"short with link chars is bad", "html.body.p", "Hi there", 1, classifier.DefaultParams(), paragraph.ClassBad},
		{"link dense is bad", "html.body.p", longGood, 100, classifier.DefaultParams(), paragraph.ClassBad},
		{"copyright sign is bad", "html.body.p", "© " + longGood, 0, classifier.DefaultParams(), paragraph.ClassBad},
		{"copy entity text is bad", "html.body.p", longGood + " &copy 2024", 0, classifier.DefaultParams(), paragraph.ClassBad},
		{"select inside path is bad", "html.body.form.select.option", longGood, 0, classifier.DefaultParams(), paragraph.ClassBad},
		{"select at path start is bad", "select.option", longGood, 0, classifier.DefaultParams(), paragraph.ClassBad},
		{
			"between densities is neargood",
			"html.body.p",
			longGood,
			0,
			classifier.Params{LengthLow: 70, LengthHigh: 200, StopwordsLow: 0.2, StopwordsHigh: 0.6, MaxLinkDensity: 0.2},
			paragraph.ClassNearGood,
		},
		{
			"language independent long is good",
			"html.body.p",
			noStopwords,
			0,
			classifier.DefaultParams().LanguageIndependent(),
			paragraph.ClassGood,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParagraph(tt.domPath, tt.text, tt.linkChars)

			classifier.ClassifyParagraphs([]*paragraph.Paragraph{p}, testStopwords, tt.params)

			assert.Equal(t, tt.want, p.CFClass)
			assert.Equal(t, paragraph.Class(""), p.ClassType)
		})
	}
}

func TestClassifyParagraphs_LanguageIndependentSplit(t *testing.T) {
	short := newParagraph("html.body.p", "Hi there", 0)
	medium := newParagraph("html.body.p", repeat("alpha", 20), 0) // 119 chars
	long := newParagraph("html.body.p", repeat("alpha", 50), 0)   // 299 chars
	ps := []*paragraph.Paragraph{short, medium, long}

	classifier.ClassifyParagraphs(ps, nil, classifier.DefaultParams().LanguageIndependent())

	assert.Equal(t, paragraph.ClassShort, short.CFClass)
	assert.Equal(t, paragraph.ClassNearGood, medium.CFClass)
	assert.Equal(t, paragraph.ClassGood, long.CFClass)
}

func TestClassifyParagraphs_StopwordsAreCaseInsensitive(t *testing.T) {
	p := newParagraph("html.body.p", repeat("THE word", 30), 0)

	classifier.ClassifyParagraphs([]*paragraph.Paragraph{p}, map[string]struct{}{"The": {}}, classifier.DefaultParams())

	assert.Equal(t, paragraph.ClassGood, p.CFClass)
}

func TestClassifyParagraphs_Headings(t *testing.T) {
	heading := newParagraph("html.body.h2", "Intro", 0)
	nested := newParagraph("html.body.h1.span", "Title", 0)
	body := newParagraph("html.body.p", "Intro", 0)

	classifier.ClassifyParagraphs([]*paragraph.Paragraph{heading, nested, body}, testStopwords, classifier.DefaultParams())
	assert.True(t, heading.Heading)
	assert.True(t, nested.Heading)
	assert.False(t, body.Heading)

	params := classifier.DefaultParams()
	params.NoHeadings = true
	classifier.ClassifyParagraphs([]*paragraph.Paragraph{heading}, testStopwords, params)
	assert.False(t, heading.Heading)
}

func TestClassifyParagraphs_RaisingLinkDensityNeverDemotesGood(t *testing.T) {
	texts := []struct {
		text      string
		linkChars int
	}{
		{repeat("the word", 30), 0},
		{repeat("the word", 30), 40},
		{repeat("the word", 30), 200},
		{repeat("the word", 10), 5},
	}

	strictParams := classifier.DefaultParams()
	looseParams := classifier.DefaultParams()
	looseParams.MaxLinkDensity = 1.0

	for _, tt := range texts {
		strict := newParagraph("html.body.p", tt.text, tt.linkChars)
		loose := newParagraph("html.body.p", tt.text, tt.linkChars)

		classifier.ClassifyParagraphs([]*paragraph.Paragraph{strict}, testStopwords, strictParams)
		classifier.ClassifyParagraphs([]*paragraph.Paragraph{loose}, testStopwords, looseParams)

		if strict.CFClass == paragraph.ClassGood {
			assert.Equal(t, paragraph.ClassGood, loose.CFClass)
		}
	}
}

func withClasses(classes ...paragraph.Class) []*paragraph.Paragraph {
	ps := make([]*paragraph.Paragraph, len(classes))
	for i, c := range classes {
		p := newParagraph("html.body.p", repeat("word", 5), 0)
		p.CFClass = c
		ps[i] = p
	}
	return ps
}

func classTypes(ps []*paragraph.Paragraph) []paragraph.Class {
	out := make([]paragraph.Class, len(ps))
	for i, p := range ps {
		out[i] = p.ClassType
	}
	return out
}

const (
	good     = paragraph.ClassGood
	bad      = paragraph.ClassBad
	short    = paragraph.ClassShort
	nearGood = paragraph.ClassNearGood
)

func TestRevise_Sequences(t *testing.T) {
	tests := []struct {
		name string
		in   []paragraph.Class
		want []paragraph.Class
	}{
		{"lone short has bad edges", []paragraph.Class{short}, []paragraph.Class{bad}},
		{"lone neargood has bad edges", []paragraph.Class{nearGood}, []paragraph.Class{bad}},
		{"short between goods", []paragraph.Class{good, short, short, good}, []paragraph.Class{good, good, good, good}},
		{"short between bads", []paragraph.Class{bad, short, bad}, []paragraph.Class{bad, bad, bad}},
		{"mixed short without neargood", []paragraph.Class{good, short, bad}, []paragraph.Class{good, bad, bad}},
		{"mixed short rescued by neargood after", []paragraph.Class{good, short, nearGood, bad}, []paragraph.Class{good, good, good, bad}},
		{"mixed short rescued by neargood before", []paragraph.Class{bad, nearGood, short, good}, []paragraph.Class{bad, good, good, good}},
		{"neargood between bads", []paragraph.Class{bad, nearGood, bad}, []paragraph.Class{bad, bad, bad}},
		{"neargood next to good", []paragraph.Class{bad, nearGood, good}, []paragraph.Class{bad, good, good}},
		{"neargood run reads snapshot", []paragraph.Class{bad, nearGood, nearGood, good}, []paragraph.Class{bad, good, good, good}},
		{"good and bad are stable", []paragraph.Class{good, bad, good}, []paragraph.Class{good, bad, good}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := withClasses(tt.in...)

			classifier.Revise(ps, 200)

			assert.Equal(t, tt.want, classTypes(ps))
			for i, p := range ps {
				assert.Equal(t, tt.in[i], p.CFClass, "cf class must not change")
			}
		})
	}
}

func TestRevise_ShortRunSkipsOtherShorts(t *testing.T) {
	// Both shorts look past each other and the neargood to reach good and bad.
	ps := withClasses(good, short, short, nearGood, bad)

	classifier.Revise(ps, 200)

	assert.Equal(t, []paragraph.Class{good, good, good, good, bad}, classTypes(ps))
}

func TestRevise_HeadingFollowedByGood(t *testing.T) {
	heading := newParagraph("html.body.h1", "Intro", 0)
	heading.CFClass = short
	heading.Heading = true
	text := newParagraph("html.body.p", repeat("the word", 30), 0)
	text.CFClass = good

	ps := []*paragraph.Paragraph{heading, text}
	classifier.Revise(ps, 200)

	assert.Equal(t, []paragraph.Class{good, good}, classTypes(ps))
}

func TestRevise_HeadingTooFarFromGood(t *testing.T) {
	heading := newParagraph("html.body.h1", "Intro", 0)
	heading.CFClass = short
	heading.Heading = true
	filler := newParagraph("html.body.p", strings.Repeat("x", 250), 0)
	filler.CFClass = bad
	text := newParagraph("html.body.p", repeat("the word", 30), 0)
	text.CFClass = good

	ps := []*paragraph.Paragraph{heading, filler, text}
	classifier.Revise(ps, 200)

	assert.Equal(t, []paragraph.Class{bad, bad, good}, classTypes(ps))
}

func TestRevise_DemotedHeadingIsRestored(t *testing.T) {
	heading := newParagraph("html.body.h2", "Section", 0)
	heading.CFClass = short
	heading.Heading = true
	filler := newParagraph("html.body.p", strings.Repeat("x", 100), 0)
	filler.CFClass = bad
	text := newParagraph("html.body.p", repeat("the word", 30), 0)
	text.CFClass = good

	ps := []*paragraph.Paragraph{heading, filler, text}
	classifier.Revise(ps, 200)

	// neargood after the first pass, bad after the third, good again after the last
	assert.Equal(t, []paragraph.Class{good, bad, good}, classTypes(ps))
}

func TestRevise_IntrinsicallyBadHeadingStaysBad(t *testing.T) {
	heading := newParagraph("html.body.h2", "© Corp", 0)
	heading.CFClass = bad
	heading.Heading = true
	text := newParagraph("html.body.p", repeat("the word", 30), 0)
	text.CFClass = good

	ps := []*paragraph.Paragraph{heading, text}
	classifier.Revise(ps, 200)

	assert.Equal(t, []paragraph.Class{bad, good}, classTypes(ps))
}

func TestRevise_ZeroHeadingDistanceStillSeesAdjacentGood(t *testing.T) {
	heading := newParagraph("html.body.h1", "Intro", 0)
	heading.CFClass = short
	heading.Heading = true
	text := newParagraph("html.body.p", repeat("the word", 30), 0)
	text.CFClass = good

	ps := []*paragraph.Paragraph{heading, text}
	classifier.Revise(ps, 0)

	assert.Equal(t, good, heading.ClassType)
}

func TestRevise_Empty(t *testing.T) {
	assert.NotPanics(t, func() { classifier.Revise(nil, 200) })
}

func TestClassifyAndRevise_LinkDenseStaysBad(t *testing.T) {
	text := repeat("the word", 33) // 296 chars
	p := newParagraph("html.body.p", text, 270)
	require.Greater(t, p.LinksDensity(), 0.85)

	ps := []*paragraph.Paragraph{p}
	classifier.ClassifyParagraphs(ps, testStopwords, classifier.DefaultParams())
	classifier.Revise(ps, 200)

	assert.Equal(t, bad, p.CFClass)
	assert.Equal(t, bad, p.ClassType)
	assert.True(t, p.IsBoilerplate())
}

func TestClassifyAndRevise_IsDeterministic(t *testing.T) {
	build := func() []*paragraph.Paragraph {
		return []*paragraph.Paragraph{
			newParagraph("html.body.h1", "Title", 0),
			newParagraph("html.body.p", repeat("the word", 30), 0),
			newParagraph("html.body.p", "tiny", 0),
			newParagraph("html.body.p", repeat("alpha beta", 20), 0),
			newParagraph("html.body.ul.li", "Home", 4),
			newParagraph("html.body.p", repeat("the word", 12), 0),
		}
	}

	first, second := build(), build()
	for _, ps := range [][]*paragraph.Paragraph{first, second} {
		classifier.ClassifyParagraphs(ps, testStopwords, classifier.DefaultParams())
		classifier.Revise(ps, 200)
	}

	assert.Equal(t, classTypes(first), classTypes(second))
	for _, p := range first {
		assert.Equal(t, p.ClassType != good, p.IsBoilerplate())
		assert.True(t, p.ClassType.IsDecided())
	}
}
