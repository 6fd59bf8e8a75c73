package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex/resume-builder/internal/testutil"
)

type resumeResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	UserID       string `json:"userId"`
	PersonalInfo *struct {
		ID       string `json:"id"`
		ResumeID string `json:"resumeId"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	} `json:"personalInfo"`
	Educations []struct {
		ID          string `json:"id"`
		ResumeID    string `json:"resumeId"`
		Institution string `json:"institution"`
	} `json:"educations"`
	Experiences []struct {
		ID       string `json:"id"`
		ResumeID string `json:"resumeId"`
		Company  string `json:"company"`
		Position string `json:"position"`
	} `json:"experiences"`
	Skills []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"skills"`
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestResumeHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("created aggregate is returned in full", func(t *testing.T) {
		payload := map[string]interface{}{
			"title": "Backend Engineer",
			"personalInfo": map[string]string{
				"fullName": "Ada Lovelace",
				"email":    "ada@example.com",
			},
			"experiences": []map[string]interface{}{
				{"company": "Acme", "position": "Engineer", "startYear": "2020", "endYear": "2022"},
			},
		}

		resp := doJSON(t, http.MethodPost, ts.APIURL("/resumes"), token, payload)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result resumeResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "Backend Engineer", result.Title)
		require.NotNil(t, result.PersonalInfo)
		assert.Equal(t, "Ada Lovelace", result.PersonalInfo.FullName)
		require.Len(t, result.Experiences, 1)
		assert.Equal(t, result.ID, result.Experiences[0].ResumeID)
	})

	t.Run("title is required", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/resumes"), token, map[string]interface{}{})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/resumes"), "", map[string]interface{}{"title": "X"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestResumeHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resume := testutil.NewResumeBuilder(owner).
		WithTitle("Visible to owner only").
		WithSkill("Go", "Expert").
		Build(t, ts.DB.DB)

	t.Run("owner reads the aggregate", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/resumes/"+resume.ID.String()), ownerToken, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result resumeResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, resume.ID.String(), result.ID)
		assert.Len(t, result.Skills, 1)
	})

	t.Run("another user's resume and a missing resume are indistinguishable", func(t *testing.T) {
		strangerResp := doJSON(t, http.MethodGet, ts.APIURL("/resumes/"+resume.ID.String()), strangerToken, nil)
		defer strangerResp.Body.Close()
		strangerBody, _ := io.ReadAll(strangerResp.Body)

		missingResp := doJSON(t, http.MethodGet, ts.APIURL("/resumes/"+uuid.New().String()), strangerToken, nil)
		defer missingResp.Body.Close()
		missingBody, _ := io.ReadAll(missingResp.Body)

		assert.Equal(t, http.StatusNotFound, strangerResp.StatusCode)
		assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)
		assert.Equal(t, string(missingBody), string(strangerBody), "response shape must not leak resume existence")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/resumes/"+resume.ID.String()), "", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestResumeHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	other, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	testutil.NewResumeBuilder(owner).WithTitle("Mine 1").Build(t, ts.DB.DB)
	testutil.NewResumeBuilder(owner).WithTitle("Mine 2").Build(t, ts.DB.DB)
	testutil.NewResumeBuilder(other).WithTitle("Theirs").Build(t, ts.DB.DB)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/resumes"), ownerToken, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result []resumeResponse
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.Equal(t, owner.ID.String(), r.UserID)
	}
}

func TestResumeHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resume := testutil.NewResumeBuilder(owner).
		WithTitle("Before").
		WithSkill("Go", "Expert").
		WithSkill("SQL", "Intermediate").
		Build(t, ts.DB.DB)

	t.Run("owner updates title without touching skills", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/resumes/"+resume.ID.String()), ownerToken,
			map[string]interface{}{"title": "After"})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result resumeResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "After", result.Title)
		assert.Len(t, result.Skills, 2)
	})

	t.Run("explicit empty skills clears the section", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/resumes/"+resume.ID.String()), ownerToken,
			map[string]interface{}{"skills": []interface{}{}})
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result resumeResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Empty(t, result.Skills)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/resumes/"+resume.ID.String()), strangerToken,
			map[string]interface{}{"title": "Hijacked"})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestResumeHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resume := testutil.NewResumeBuilder(owner).
		WithTitle("Doomed").
		WithEducation("MIT", "BSc").
		Build(t, ts.DB.DB)

	t.Run("stranger cannot delete", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/resumes/"+resume.ID.String()), strangerToken, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner deletes the whole aggregate", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/resumes/"+resume.ID.String()), ownerToken, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		getResp := doJSON(t, http.MethodGet, ts.APIURL("/resumes/"+resume.ID.String()), ownerToken, nil)
		defer getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

		testutil.AssertNoChildren(t, ts.DB.DB, resume.ID)
	})
}

func TestResumeHandler_InvalidTokenShortCircuits(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// A syntactically valid but unverifiable token must be rejected before
	// any resume operation runs.
	badToken := fmt.Sprintf("%s.%s.%s", "eyJhbGciOiJIUzI1NiJ9", "eyJzdWIiOiJ4In0", "bad-signature")

	resp := doJSON(t, http.MethodGet, ts.APIURL("/resumes"), badToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
