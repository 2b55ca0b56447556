package dom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	path, err := ParsePath([]byte(`[
		[1, "body"],
		// json5 allows comments and unquoted keys
		[3, "div", {id: "content", cls: "main", optional: true, debug: true, text: "x", nth: 2}]
	]`))
	require.NoError(t, err)
	require.Equal(t, Path{
		At(1, "body"),
		At(3, "div", StepOptions{
			ID:           "content",
			Class:        "main",
			Optional:     true,
			Debug:        true,
			Unrecognized: []string{"nth", "text"},
		}),
	}, path)
}

func TestParsePathErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "not a list", input: `{"a": 1}`},
		{name: "step is not a list", input: `[1]`},
		{name: "too short", input: `[[1]]`},
		{name: "too long", input: `[[1, "a", {}, 4]]`},
		{name: "negative index", input: `[[-1, "a"]]`},
		{name: "fractional index", input: `[[1.5, "a"]]`},
		{name: "index too large", input: `[[1e20, "a"]]`},
		{name: "empty tag", input: `[[0, ""]]`},
		{name: "options not an object", input: `[[0, "a", "b"]]`},
		{name: "id not a string", input: `[[0, "a", {id: 3}]]`},
		{name: "optional not a bool", input: `[[0, "a", {optional: "yes"}]]`},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParsePath([]byte(test.input))
			require.Error(t, err)
		})
	}
}

func TestStepUnmarshalJSON(t *testing.T) {
	var path Path
	err := json.Unmarshal([]byte(`[[0, "html"], [1, "body", null], [2, "p", {"cls": "lead"}]]`), &path)
	require.NoError(t, err)
	require.Equal(t, Path{
		At(0, "html"),
		At(1, "body"),
		At(2, "p", StepOptions{Class: "lead"}),
	}, path)

	err = json.Unmarshal([]byte(`[[0, 1]]`), &path)
	require.Error(t, err)
}
