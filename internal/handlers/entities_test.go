package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createProject(t *testing.T, token, name string) int64 {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/users/projects", token, gin.H{
		"name":        name,
		"imageUrl":    "https://cdn.example.com/cover.png",
		"url":         "https://example.com/" + name,
		"description": "demo project",
		"hashtag":     "#go",
		"isPublished": true,
		"isOpen":      false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.Data.ID)
	return resp.Data.ID
}

func TestProjectLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	id := f.createProject(t, token, "portfolio")

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/users/projects/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeEnvelope(t, rec)

	var project projectResponse
	require.NoError(t, json.Unmarshal(data, &project))
	assert.Equal(t, "portfolio", project.Name)
	assert.True(t, project.IsPublished)
	assert.False(t, project.IsOpen)

	rec = f.do(t, http.MethodGet, "/api/users/project/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeEnvelope(t, rec)
	var projects []projectResponse
	require.NoError(t, json.Unmarshal(data, &projects))
	assert.Len(t, projects, 1)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/api/users/projects/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/api/users/projects/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectPartialUpdate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	id := f.createProject(t, token, "portfolio")

	rec := f.do(t, http.MethodPatch, fmt.Sprintf("/api/users/projects/%d", id), token, gin.H{
		"name": "portfolio-v2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)

	var project projectResponse
	require.NoError(t, json.Unmarshal(data, &project))
	assert.Equal(t, "portfolio-v2", project.Name)
	// Fields absent from the patch keep their stored values.
	assert.Equal(t, "demo project", project.Description)
	assert.Equal(t, "#go", project.Hashtag)
	assert.True(t, project.IsPublished)
}

func TestProjectOwnershipScoping(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	f.register(t, "bob", "secret", "ADMIN")
	aliceToken := f.login(t, "alice", "secret")
	bobToken := f.login(t, "bob", "secret")

	id := f.createProject(t, aliceToken, "portfolio")

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, fmt.Sprintf("/api/users/projects/%d", id), nil},
		{http.MethodPatch, fmt.Sprintf("/api/users/projects/%d", id), gin.H{"name": "stolen"}},
		{http.MethodDelete, fmt.Sprintf("/api/users/projects/%d", id), nil},
	} {
		rec := f.do(t, tc.method, tc.path, bobToken, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		_, messages, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "Project not found", messages)
	}

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/users/projects/%d", id), aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectBadPathID(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	rec := f.do(t, http.MethodGet, "/api/users/projects/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, messages, _ := decodeEnvelope(t, rec)
	assert.Equal(t, "Bad request", messages)
}

func TestImageLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	projectID := f.createProject(t, token, "portfolio")

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/users/projects/%d", projectID), token, gin.H{
		"name":     "screenshot",
		"imageUrl": "https://cdn.example.com/shot.png",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)

	var image imageResponse
	require.NoError(t, json.Unmarshal(data, &image))
	assert.Equal(t, projectID, image.ProjectID)

	imagePath := fmt.Sprintf("/api/users/projects/%d/image/%d", projectID, image.ID)

	rec = f.do(t, http.MethodPatch, imagePath, token, gin.H{"name": "cover"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, imagePath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(data, &image))
	assert.Equal(t, "cover", image.Name)
	assert.Equal(t, "https://cdn.example.com/shot.png", image.ImageURL)

	rec = f.do(t, http.MethodGet, "/api/users/projects/images/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data = decodeEnvelope(t, rec)
	var images []imageResponse
	require.NoError(t, json.Unmarshal(data, &images))
	assert.Len(t, images, 1)

	rec = f.do(t, http.MethodDelete, imagePath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, imagePath, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImageRequiresOwnedParentProject(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	f.register(t, "bob", "secret", "ADMIN")
	aliceToken := f.login(t, "alice", "secret")
	bobToken := f.login(t, "bob", "secret")

	projectID := f.createProject(t, aliceToken, "portfolio")

	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/users/projects/%d", projectID), bobToken, gin.H{
		"name":     "screenshot",
		"imageUrl": "https://cdn.example.com/shot.png",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, messages, _ := decodeEnvelope(t, rec)
	assert.Equal(t, "Project not found", messages)
}

func TestDeleteProjectCascadesImages(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	projectID := f.createProject(t, token, "portfolio")
	rec := f.do(t, http.MethodPost, fmt.Sprintf("/api/users/projects/%d", projectID), token, gin.H{
		"name":     "screenshot",
		"imageUrl": "https://cdn.example.com/shot.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/api/users/projects/%d", projectID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/projects/images/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeEnvelope(t, rec)
	var images []imageResponse
	require.NoError(t, json.Unmarshal(data, &images))
	assert.Empty(t, images)
}

func TestProfileLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	body := gin.H{
		"firstname": "Alice",
		"lastname":  "Smith",
		"about":     "backend engineer",
	}
	rec := f.do(t, http.MethodPost, "/api/users/profiles", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/users/profiles", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, messages, _ := decodeEnvelope(t, rec)
	assert.Equal(t, "Profile already registered", messages)

	rec = f.do(t, http.MethodPatch, "/api/users/profiles", token, gin.H{"about": "platform engineer"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _, data := decodeEnvelope(t, rec)
	var profile profileResponse
	require.NoError(t, json.Unmarshal(data, &profile))
	assert.Equal(t, "Alice", profile.Firstname)
	assert.Equal(t, "platform engineer", profile.About)

	rec = f.do(t, http.MethodDelete, "/api/users/profiles", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/profiles", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSkillLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	rec := f.do(t, http.MethodPost, "/api/users/skills", token, gin.H{
		"name":        "Go",
		"imageUrl":    "https://cdn.example.com/go.png",
		"isPublished": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))

	rec = f.do(t, http.MethodPatch, fmt.Sprintf("/api/users/skills/%d", created.ID), token, gin.H{
		"isPublished": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/skills", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/api/users/skills/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/api/users/skills/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	rec := f.do(t, http.MethodPost, "/api/users/services", token, gin.H{
		"name":        "API development",
		"imageUrl":    "https://cdn.example.com/api.png",
		"description": "REST backends",
		"isPublished": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))

	rec = f.do(t, http.MethodGet, "/api/users/services/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/api/users/services/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/api/users/services/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSocialAccountLifecycle(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret", "ADMIN")
	token := f.login(t, "alice", "secret")

	rec := f.do(t, http.MethodPost, "/api/users/socials", token, gin.H{
		"name":        "github",
		"url":         "https://github.com/alice",
		"imageUrl":    "https://cdn.example.com/gh.png",
		"isPublished": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))

	rec = f.do(t, http.MethodPatch, fmt.Sprintf("/api/users/socials/%d", created.ID), token, gin.H{
		"url": "https://github.com/alice-smith",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/socials/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/api/users/socials/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
