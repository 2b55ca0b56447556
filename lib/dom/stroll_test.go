package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"chatbot-backend/internal/telemetry"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed wordbook_page_test.html
var wordbookPage []byte

func parseWordbook(t testing.TB) []Node {
	root, err := Parse(bytes.NewReader(wordbookPage))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

// whitespace text nodes sit between every tag inside <body>, so element
// indices inside it are odd.
var sensesPath = Path{
	At(1, "html"),
	At(1, "body"),
	At(1, "div", StepOptions{ID: "page", Class: "wide"}),
	At(3, "main", StepOptions{ID: "content-main"}),
	At(5, "ol", StepOptions{Class: "senses"}),
}

func TestStrollReturnsNodeAtPath(t *testing.T) {
	root := parseWordbook(t)

	ol, err := Stroll(&telemetry.Recorder{}, "wordbook", false, root, sensesPath)
	require.NoError(t, err)
	require.NotNil(t, ol)
	require.Equal(t, "ol", ol.Tag)

	html := root[1].(*Element)
	expected := html.Children[1].(*Element).
		Children[1].(*Element).
		Children[3].(*Element).
		Children[5].(*Element)
	require.Same(t, expected, ol)

	li, err := Stroll(nil, "wordbook", false, ol.Children, Path{At(3, "li", StepOptions{Class: "sense"})})
	require.NoError(t, err)
	require.Equal(t, "a leisurely walk", TextContent(li))
}

func TestStrollScenario(t *testing.T) {
	root, err := Parse(strings.NewReader(`<html><body><div id="x" class="a b">TEXT<span>Y</span></div></body></html>`))
	require.NoError(t, err)
	html := root[0].(*Element)

	div, err := Stroll(nil, "scenario", false, html.Children, Path{
		At(1, "body"),
		At(0, "div", StepOptions{ID: "x", Class: "b"}),
	})
	require.NoError(t, err)
	require.Equal(t, "div", div.Tag)
	require.Equal(t, "x", div.ID())

	_, err = Stroll(nil, "scenario", false, html.Children, Path{
		At(1, "body"),
		At(0, "div", StepOptions{ID: "x", Class: "z"}),
	})
	var mismatch *StructureMismatch
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, CheckWrongClass, mismatch.Check)
	require.Equal(t, 1, mismatch.Step)
	require.Equal(t, "scenario", mismatch.Site)
}

func TestStrollMismatches(t *testing.T) {
	root := parseWordbook(t)

	testCases := []struct {
		name  string
		path  Path
		step  int
		check Check
	}{
		{
			name:  "index out of range",
			path:  Path{At(1, "html"), At(7, "body")},
			step:  1,
			check: CheckMissingNode,
		},
		{
			name:  "text node",
			path:  Path{At(1, "html"), At(1, "body"), At(0, "div")},
			step:  2,
			check: CheckWrongKind,
		},
		{
			name:  "directive",
			path:  Path{At(0, "html")},
			step:  0,
			check: CheckWrongKind,
		},
		{
			name:  "wrong tag",
			path:  Path{At(1, "html"), At(1, "section")},
			step:  1,
			check: CheckWrongTag,
		},
		{
			name:  "id prefix is not a match",
			path:  Path{At(1, "html"), At(1, "body"), At(1, "div"), At(3, "main", StepOptions{ID: "content"})},
			step:  3,
			check: CheckWrongID,
		},
		{
			name:  "class substring is not a match",
			path:  Path{At(1, "html"), At(1, "body"), At(1, "div", StepOptions{Class: "wid"})},
			step:  2,
			check: CheckWrongClass,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			tel := &telemetry.Recorder{}
			el, err := Stroll(tel, "wordbook", false, root, test.path)
			require.Nil(t, el)
			require.True(t, errors.Is(err, ErrStructureMismatch))

			var mismatch *StructureMismatch
			require.ErrorAs(t, err, &mismatch)
			require.Equal(t, test.step, mismatch.Step)
			require.Equal(t, test.path[test.step].Index, mismatch.Index)
			require.Equal(t, test.check, mismatch.Check)
			require.Contains(t, mismatch.Error(), test.check.String())
			require.True(t, tel.Has(telemetry.LevelBroken, report_stroll_step))
		})
	}
}

func TestStrollOptional(t *testing.T) {
	root := parseWordbook(t)

	t.Run("trailing optional step", func(t *testing.T) {
		path := append(Path{}, sensesPath...)
		path = append(path, At(1, "table", StepOptions{Optional: true}))

		tel := &telemetry.Recorder{}
		el, err := Stroll(tel, "wordbook", false, root, path)
		require.NoError(t, err)
		require.Nil(t, el)
		require.Empty(t, tel.Reports(telemetry.LevelBroken))
	})

	t.Run("optional short-circuits later required steps", func(t *testing.T) {
		el, err := Stroll(nil, "wordbook", false, root, Path{
			At(1, "html"),
			At(9, "aside", StepOptions{Optional: true}),
			At(0, "does-not-exist"),
		})
		require.NoError(t, err)
		require.Nil(t, el)
	})

	t.Run("required step fails before optional", func(t *testing.T) {
		el, err := Stroll(nil, "wordbook", false, root, Path{
			At(1, "nav"),
			At(0, "aside", StepOptions{Optional: true}),
		})
		require.Nil(t, el)
		require.ErrorIs(t, err, ErrStructureMismatch)
	})

	t.Run("optional step that matches descends", func(t *testing.T) {
		el, err := Stroll(nil, "wordbook", false, root, Path{
			At(1, "html", StepOptions{Optional: true}),
			At(0, "head", StepOptions{Optional: true}),
		})
		require.NoError(t, err)
		require.Equal(t, "head", el.Tag)
	})
}

func TestStrollEmptyPath(t *testing.T) {
	_, err := Stroll(nil, "wordbook", false, parseWordbook(t), nil)
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestStrollDebugStep(t *testing.T) {
	root := parseWordbook(t)
	path := append(Path{}, sensesPath...)
	path = append(path, Step{
		Index: 3,
		Tag:   "li",
		Opts:  StepOptions{Debug: true, Unrecognized: []string{"text"}},
	})

	tel := &telemetry.Recorder{}
	li, err := Stroll(tel, "wordbook", false, root, path)
	require.NoError(t, err)
	require.NotNil(t, li)

	warnings := tel.Reports(telemetry.LevelWarning)
	require.Len(t, warnings, 3)

	var messages []string
	for _, w := range warnings {
		require.Equal(t, report_stroll_debug, w.ID)
		require.Equal(t, 5, w.Params[1])
		messages = append(messages, w.Params[2].(string))
	}
	require.Equal(t, []string{
		`unchecked class "sense"`,
		"unchecked attributes data-rank",
		"unrecognized options text",
	}, messages)
}

func TestStrollDebugStepUncheckedID(t *testing.T) {
	root := parseWordbook(t)
	path := Path{
		At(1, "html"),
		At(1, "body"),
		At(1, "div", StepOptions{Class: "wide", Debug: true}),
	}

	tel := &telemetry.Recorder{}
	div, err := Stroll(tel, "wordbook", false, root, path)
	require.NoError(t, err)
	require.NotNil(t, div)

	warnings := tel.Reports(telemetry.LevelWarning)
	require.Len(t, warnings, 1)
	require.Equal(t, report_stroll_debug, warnings[0].ID)
	require.Equal(t, 2, warnings[0].Params[1])
	require.Equal(t, `unchecked id "page"`, warnings[0].Params[2])
}

func TestStrollDebugStepFullyChecked(t *testing.T) {
	tel := &telemetry.Recorder{}
	root := parseWordbook(t)
	_, err := Stroll(tel, "wordbook", false, root, Path{
		At(1, "html", StepOptions{Debug: true}),
		At(1, "body", StepOptions{Debug: true}),
		At(1, "div", StepOptions{ID: "page", Class: "layout", Debug: true}),
	})
	require.NoError(t, err)
	require.Empty(t, tel.Reports(telemetry.LevelWarning))
}

func TestStrollDebugAll(t *testing.T) {
	tel := &telemetry.Recorder{}
	_, err := Stroll(tel, "wordbook", true, parseWordbook(t), Path{At(1, "html"), At(1, "body")})
	require.NoError(t, err)

	var listings [][]string
	for _, report := range tel.Reports(telemetry.LevelDebug) {
		if report.ID == report_stroll_children {
			listings = append(listings, report.Params[2].([]string))
		}
	}
	require.Equal(t, [][]string{
		{"0:#directive", "1:html"},
		{"0:head", "1:body"},
	}, listings)
}
