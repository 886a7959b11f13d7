package jobs

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bson.M
	}{
		{
			name:  "no filters",
			query: "",
			want:  bson.M{"status": "active"},
		},
		{
			name:  "category only",
			query: "category=engineering",
			want:  bson.M{"status": "active", "category": "engineering"},
		},
		{
			name:  "all filters",
			query: "category=design&job_type=full_time&experience_level=senior",
			want: bson.M{
				"status":           "active",
				"category":         "design",
				"job_type":         "full_time",
				"experience_level": "senior",
			},
		},
		{
			name:  "unknown params ignored",
			query: "status=deleted&employer_id=evil&limit=9",
			want:  bson.M{"status": "active"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tt.want, listFilter(q))
		})
	}
}
