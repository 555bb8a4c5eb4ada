package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		limit   string
		offset  string
		want    Page
		wantErr string
	}{
		{name: "defaults", want: Page{Limit: DefaultLimit}},
		{name: "explicit", limit: "10", offset: "30", want: Page{Limit: 10, Offset: 30}},
		{name: "zero limit means default", limit: "0", want: Page{Limit: DefaultLimit}},
		{name: "clamped to max", limit: "5000", want: Page{Limit: MaxLimit}},
		{name: "negative limit", limit: "-1", wantErr: "non-negative"},
		{name: "negative offset", offset: "-5", wantErr: "non-negative"},
		{name: "not a number", limit: "10; DROP TABLE payments", wantErr: "invalid limit"},
		{name: "offset not a number", offset: "abc", wantErr: "invalid offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePage(tt.limit, tt.offset)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
