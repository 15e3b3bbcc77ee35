package fragment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []string{"Added", "Changed", "Fixed"}

func TestEncode(t *testing.T) {
	t.Parallel()

	got := Encode(Change{Kind: "Added", Message: "Support X\n\nwith details", Author: "Jo"})
	assert.Equal(t, "- Author: Jo\n- Kind: Added\n---\nSupport X\n\nwith details", got)
}

func TestDecode_Valid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    Change
	}{
		"minimal": {
			content: "- Author: Jo\n- Kind: Added\n---\nSupport X",
			want:    Change{Kind: "Added", Message: "Support X", Author: "Jo"},
		},
		"values are trimmed": {
			content: "- Author:    Jane Doe  \n- Kind:  Fixed \n---\n\n  Crash on start  \n\n",
			want:    Change{Kind: "Fixed", Message: "Crash on start", Author: "Jane Doe"},
		},
		"blank lines between header lines": {
			content: "- Author: Jo\n\n\n- Kind: Changed\n\n---\nReworked Y",
			want:    Change{Kind: "Changed", Message: "Reworked Y", Author: "Jo"},
		},
		"multi-line message": {
			content: "- Author: Jo\n- Kind: Added\n---\nFirst line\n\nSecond paragraph\n",
			want:    Change{Kind: "Added", Message: "First line\n\nSecond paragraph", Author: "Jo"},
		},
		"CRLF line endings": {
			content: "- Author: Jo\r\n- Kind: Added\r\n---\r\nFirst\r\nSecond\r\n",
			want:    Change{Kind: "Added", Message: "First\nSecond", Author: "Jo"},
		},
		"lone CR inside message": {
			content: "- Author: Jo\n- Kind: Added\n---\nFirst\rSecond",
			want:    Change{Kind: "Added", Message: "First\nSecond", Author: "Jo"},
		},
		"colon in author value": {
			content: "- Author: Jo: the reviewer\n- Kind: Added\n---\nX",
			want:    Change{Kind: "Added", Message: "X", Author: "Jo: the reviewer"},
		},
		"separator inside message is kept": {
			content: "- Author: Jo\n- Kind: Added\n---\nabove\n---\nbelow",
			want:    Change{Kind: "Added", Message: "above\n---\nbelow", Author: "Jo"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.content, testCategories)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content    string
		wantReason Reason
		wantValue  string
	}{
		"empty content": {
			content:    "",
			wantReason: ReasonMissingAuthor,
		},
		"author without colon": {
			content:    "- Author Jo\n- Kind: Added\n---\nX",
			wantReason: ReasonMalformedAuthor,
		},
		"wrong author label": {
			content:    "- Writer: Jo\n- Kind: Added\n---\nX",
			wantReason: ReasonUnexpectedAuthorLabel,
			wantValue:  "- Writer",
		},
		"author label is case-sensitive": {
			content:    "- author: Jo\n- Kind: Added\n---\nX",
			wantReason: ReasonUnexpectedAuthorLabel,
			wantValue:  "- author",
		},
		"blank line before author": {
			content:    "\n- Author: Jo\n- Kind: Added\n---\nX",
			wantReason: ReasonMalformedAuthor,
		},
		"missing kind line": {
			content:    "- Author: Jo\n",
			wantReason: ReasonMissingKind,
		},
		"kind without colon": {
			content:    "- Author: Jo\n- Kind Added\n---\nX",
			wantReason: ReasonMalformedKind,
		},
		"wrong kind label": {
			content:    "- Author: Jo\n- Type: Added\n---\nX",
			wantReason: ReasonUnexpectedKindLabel,
			wantValue:  "- Type",
		},
		"missing separator": {
			content:    "- Author: Jo\n- Kind: Added\nX",
			wantReason: ReasonMissingSeparator,
		},
		"separator at end of file": {
			content:    "- Author: Jo\n- Kind: Added\n",
			wantReason: ReasonMissingSeparator,
		},
		"empty author": {
			content:    "- Author:   \n- Kind: Added\n---\nX",
			wantReason: ReasonEmptyAuthor,
		},
		"empty kind": {
			content:    "- Author: Jo\n- Kind:\n---\nX",
			wantReason: ReasonEmptyKind,
		},
		"empty message": {
			content:    "- Author: Jo\n- Kind: Added\n---\n  \n\n",
			wantReason: ReasonEmptyMessage,
		},
		"unknown kind": {
			content:    "- Author: Jo\n- Kind: Security\n---\nX",
			wantReason: ReasonUnknownKind,
			wantValue:  "Security",
		},
		"kind is case-sensitive": {
			content:    "- Author: Jo\n- Kind: added\n---\nX",
			wantReason: ReasonUnknownKind,
			wantValue:  "added",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(tt.content, testCategories)
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe), "expected FormatError, got %T", err)
			assert.Equal(t, tt.wantReason, fe.Reason)
			assert.Equal(t, tt.wantValue, fe.Value)
			assert.True(t, IsFormatError(err))
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	changes := []Change{
		{Kind: "Added", Message: "Support X", Author: "Jo"},
		{Kind: "Fixed", Message: "First line\n  indented\n\nlast", Author: "Jane Doe"},
		{Kind: "Changed", Message: "Uses: colons: everywhere", Author: "A: B"},
		{Kind: "Added", Message: "- looks like a bullet\n# looks like a heading", Author: "X"},
	}

	for _, c := range changes {
		got, err := Decode(Encode(c), testCategories)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestFormatError_Messages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *FormatError
		want string
	}{
		"missing author": {
			err:  &FormatError{Reason: ReasonMissingAuthor},
			want: "invalid format: missing author field",
		},
		"unexpected kind label": {
			err:  &FormatError{Reason: ReasonUnexpectedKindLabel, Value: "- Type"},
			want: `invalid format: expected kind field, got "- Type"`,
		},
		"missing separator": {
			err:  &FormatError{Reason: ReasonMissingSeparator},
			want: "invalid format: missing message separator",
		},
		"unknown kind": {
			err:  &FormatError{Reason: ReasonUnknownKind, Value: "Nope"},
			want: `unknown change kind "Nope"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
