package projects

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListFilter(t *testing.T) {
	q, _ := url.ParseQuery("")
	assert.Equal(t, bson.M{"status": "active"}, listFilter(q))

	q, _ = url.ParseQuery("category=design&budget_type=hourly")
	assert.Equal(t, bson.M{
		"status":      "active",
		"category":    "design",
		"budget_type": "hourly",
	}, listFilter(q))

	// job-only parameters have no effect on projects
	q, _ = url.ParseQuery("job_type=full_time&experience_level=senior")
	assert.Equal(t, bson.M{"status": "active"}, listFilter(q))
}
