package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertChildCount verifies the number of rows in table referencing resumeID
func AssertChildCount(t *testing.T, db *gorm.DB, table string, resumeID uuid.UUID, expected int64) {
	t.Helper()

	var count int64
	err := db.Table(table).Where("resume_id = ?", resumeID).Count(&count).Error
	require.NoError(t, err, "failed to count rows in %s", table)
	assert.Equal(t, expected, count, "unexpected row count in %s", table)
}

// AssertNoChildren verifies that no child row in any table references resumeID
func AssertNoChildren(t *testing.T, db *gorm.DB, resumeID uuid.UUID) {
	t.Helper()

	tables := []string{
		"personal_infos",
		"educations",
		"experiences",
		"skills",
		"certifications",
		"awards",
		"projects",
	}
	for _, table := range tables {
		AssertChildCount(t, db, table, resumeID, 0)
	}
}
