package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChange_Markdown(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		change Change
		want   string
	}{
		"single line": {
			change: Change{Kind: "Added", Message: "Support X", Author: "Jo"},
			want:   "- Support X (by Jo)",
		},
		"multi line": {
			change: Change{Kind: "Added", Message: "Support X\nand Y", Author: "Jo"},
			want:   "- Support X\n  and Y\n  By: Jo",
		},
		"blank line inside message stays blank": {
			change: Change{Kind: "Fixed", Message: "Summary\n\nDetails", Author: "Jane"},
			want:   "- Summary\n\n  Details\n  By: Jane",
		},
		"heading-like continuation is indented": {
			change: Change{Kind: "Fixed", Message: "Summary\n# not a heading", Author: "Jane"},
			want:   "- Summary\n  # not a heading\n  By: Jane",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.change.Markdown())
		})
	}
}

func TestGroupByKind(t *testing.T) {
	t.Parallel()

	changes := []Change{
		{Kind: "Fixed", Message: "a", Author: "x"},
		{Kind: "Added", Message: "b", Author: "x"},
		{Kind: "Fixed", Message: "c", Author: "x"},
	}

	grouped := GroupByKind(changes)
	assert.Len(t, grouped, 2)
	assert.Equal(t, []Change{changes[0], changes[2]}, grouped["Fixed"])
	assert.Equal(t, []Change{changes[1]}, grouped["Added"])
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(Change{Kind: "Added", Message: "m", Author: "a"}, testCategories))
	assert.Error(t, Validate(Change{Kind: "Added", Message: " ", Author: "a"}, testCategories))
	assert.Error(t, Validate(Change{Kind: "Removed", Message: "m", Author: "a"}, testCategories))
}
