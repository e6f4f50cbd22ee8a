package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/config"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/repository"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/security"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/service"
)

// In-memory repository fakes. They mirror the ownership scoping of the
// postgres implementations so handler behavior matches production.

type memUsers struct {
	byUsername map[string]*models.User
	nextID     int64
}

func newMemUsers() *memUsers {
	return &memUsers{byUsername: map[string]*models.User{}, nextID: 1}
}

func (m *memUsers) Create(_ context.Context, user *models.User, role string) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return repository.ErrRoleNotFound
	}
	if _, ok := m.byUsername[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	user.ID = m.nextID
	m.nextID++
	user.Roles = []string{role}
	stored := *user
	m.byUsername[user.Username] = &stored
	return nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return *user, nil
}

func (m *memUsers) FindByToken(_ context.Context, token string) (models.User, error) {
	for _, user := range m.byUsername {
		if user.Token != nil && *user.Token == token {
			return *user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memUsers) UpdateToken(_ context.Context, id int64, token *string, expiresAt *time.Time) error {
	for _, user := range m.byUsername {
		if user.ID == id {
			user.Token = token
			user.TokenExpiresAt = expiresAt
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, passwordHash []byte) error {
	for _, user := range m.byUsername {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type memProfiles struct {
	byUser map[int64]*models.Profile
	nextID int64
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byUser: map[int64]*models.Profile{}, nextID: 1}
}

func (m *memProfiles) Create(_ context.Context, profile *models.Profile) error {
	if _, ok := m.byUser[profile.UserID]; ok {
		return repository.ErrProfileExists
	}
	profile.ID = m.nextID
	m.nextID++
	stored := *profile
	m.byUser[profile.UserID] = &stored
	return nil
}

func (m *memProfiles) FindByUser(_ context.Context, userID int64) (models.Profile, error) {
	profile, ok := m.byUser[userID]
	if !ok {
		return models.Profile{}, repository.ErrProfileNotFound
	}
	return *profile, nil
}

func (m *memProfiles) Update(_ context.Context, profile models.Profile) error {
	if _, ok := m.byUser[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	m.byUser[profile.UserID] = &profile
	return nil
}

func (m *memProfiles) Delete(_ context.Context, userID int64) error {
	if _, ok := m.byUser[userID]; !ok {
		return repository.ErrProfileNotFound
	}
	delete(m.byUser, userID)
	return nil
}

type memProjects struct {
	byID   map[int64]*models.Project
	images *memImages
	nextID int64
}

func newMemProjects(images *memImages) *memProjects {
	return &memProjects{byID: map[int64]*models.Project{}, images: images, nextID: 1}
}

func (m *memProjects) Create(_ context.Context, project *models.Project) error {
	project.ID = m.nextID
	m.nextID++
	stored := *project
	m.byID[project.ID] = &stored
	return nil
}

func (m *memProjects) FindByID(_ context.Context, userID, id int64) (models.Project, error) {
	project, ok := m.byID[id]
	if !ok || project.UserID != userID {
		return models.Project{}, repository.ErrProjectNotFound
	}
	return *project, nil
}

func (m *memProjects) ListByUser(_ context.Context, userID int64) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	for _, project := range m.byID {
		if project.UserID == userID {
			projects = append(projects, *project)
		}
	}
	return projects, nil
}

func (m *memProjects) Update(_ context.Context, project models.Project) error {
	existing, ok := m.byID[project.ID]
	if !ok || existing.UserID != project.UserID {
		return repository.ErrProjectNotFound
	}
	m.byID[project.ID] = &project
	return nil
}

func (m *memProjects) Delete(_ context.Context, userID, id int64) error {
	project, ok := m.byID[id]
	if !ok || project.UserID != userID {
		return repository.ErrProjectNotFound
	}
	for imageID, image := range m.images.byID {
		if image.ProjectID == id {
			delete(m.images.byID, imageID)
		}
	}
	delete(m.byID, id)
	return nil
}

type memImages struct {
	byID     map[int64]*models.ProjectImage
	projects func() map[int64]*models.Project
	nextID   int64
}

func newMemImages() *memImages {
	return &memImages{byID: map[int64]*models.ProjectImage{}, nextID: 1}
}

func (m *memImages) Create(_ context.Context, image *models.ProjectImage) error {
	image.ID = m.nextID
	m.nextID++
	stored := *image
	m.byID[image.ID] = &stored
	return nil
}

func (m *memImages) FindByID(_ context.Context, projectID, id int64) (models.ProjectImage, error) {
	image, ok := m.byID[id]
	if !ok || image.ProjectID != projectID {
		return models.ProjectImage{}, repository.ErrImageNotFound
	}
	return *image, nil
}

func (m *memImages) ListByUser(_ context.Context, userID int64) ([]models.ProjectImage, error) {
	images := make([]models.ProjectImage, 0)
	for _, image := range m.byID {
		project, ok := m.projects()[image.ProjectID]
		if ok && project.UserID == userID {
			images = append(images, *image)
		}
	}
	return images, nil
}

func (m *memImages) Update(_ context.Context, image models.ProjectImage) error {
	existing, ok := m.byID[image.ID]
	if !ok || existing.ProjectID != image.ProjectID {
		return repository.ErrImageNotFound
	}
	m.byID[image.ID] = &image
	return nil
}

func (m *memImages) Delete(_ context.Context, projectID, id int64) error {
	image, ok := m.byID[id]
	if !ok || image.ProjectID != projectID {
		return repository.ErrImageNotFound
	}
	delete(m.byID, id)
	return nil
}

type memSkills struct {
	byID   map[int64]*models.Skill
	nextID int64
}

func newMemSkills() *memSkills {
	return &memSkills{byID: map[int64]*models.Skill{}, nextID: 1}
}

func (m *memSkills) Create(_ context.Context, skill *models.Skill) error {
	skill.ID = m.nextID
	m.nextID++
	stored := *skill
	m.byID[skill.ID] = &stored
	return nil
}

func (m *memSkills) FindByID(_ context.Context, userID, id int64) (models.Skill, error) {
	skill, ok := m.byID[id]
	if !ok || skill.UserID != userID {
		return models.Skill{}, repository.ErrSkillNotFound
	}
	return *skill, nil
}

func (m *memSkills) ListByUser(_ context.Context, userID int64) ([]models.Skill, error) {
	skills := make([]models.Skill, 0)
	for _, skill := range m.byID {
		if skill.UserID == userID {
			skills = append(skills, *skill)
		}
	}
	return skills, nil
}

func (m *memSkills) Update(_ context.Context, skill models.Skill) error {
	existing, ok := m.byID[skill.ID]
	if !ok || existing.UserID != skill.UserID {
		return repository.ErrSkillNotFound
	}
	m.byID[skill.ID] = &skill
	return nil
}

func (m *memSkills) Delete(_ context.Context, userID, id int64) error {
	skill, ok := m.byID[id]
	if !ok || skill.UserID != userID {
		return repository.ErrSkillNotFound
	}
	delete(m.byID, id)
	return nil
}

type memServices struct {
	byID   map[int64]*models.Service
	nextID int64
}

func newMemServices() *memServices {
	return &memServices{byID: map[int64]*models.Service{}, nextID: 1}
}

func (m *memServices) Create(_ context.Context, service *models.Service) error {
	service.ID = m.nextID
	m.nextID++
	stored := *service
	m.byID[service.ID] = &stored
	return nil
}

func (m *memServices) FindByID(_ context.Context, userID, id int64) (models.Service, error) {
	service, ok := m.byID[id]
	if !ok || service.UserID != userID {
		return models.Service{}, repository.ErrServiceNotFound
	}
	return *service, nil
}

func (m *memServices) ListByUser(_ context.Context, userID int64) ([]models.Service, error) {
	services := make([]models.Service, 0)
	for _, service := range m.byID {
		if service.UserID == userID {
			services = append(services, *service)
		}
	}
	return services, nil
}

func (m *memServices) Update(_ context.Context, service models.Service) error {
	existing, ok := m.byID[service.ID]
	if !ok || existing.UserID != service.UserID {
		return repository.ErrServiceNotFound
	}
	m.byID[service.ID] = &service
	return nil
}

func (m *memServices) Delete(_ context.Context, userID, id int64) error {
	service, ok := m.byID[id]
	if !ok || service.UserID != userID {
		return repository.ErrServiceNotFound
	}
	delete(m.byID, id)
	return nil
}

type memSocials struct {
	byID   map[int64]*models.SocialAccount
	nextID int64
}

func newMemSocials() *memSocials {
	return &memSocials{byID: map[int64]*models.SocialAccount{}, nextID: 1}
}

func (m *memSocials) Create(_ context.Context, account *models.SocialAccount) error {
	account.ID = m.nextID
	m.nextID++
	stored := *account
	m.byID[account.ID] = &stored
	return nil
}

func (m *memSocials) FindByID(_ context.Context, userID, id int64) (models.SocialAccount, error) {
	account, ok := m.byID[id]
	if !ok || account.UserID != userID {
		return models.SocialAccount{}, repository.ErrSocialAccountNotFound
	}
	return *account, nil
}

func (m *memSocials) ListByUser(_ context.Context, userID int64) ([]models.SocialAccount, error) {
	accounts := make([]models.SocialAccount, 0)
	for _, account := range m.byID {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (m *memSocials) Update(_ context.Context, account models.SocialAccount) error {
	existing, ok := m.byID[account.ID]
	if !ok || existing.UserID != account.UserID {
		return repository.ErrSocialAccountNotFound
	}
	m.byID[account.ID] = &account
	return nil
}

func (m *memSocials) Delete(_ context.Context, userID, id int64) error {
	account, ok := m.byID[id]
	if !ok || account.UserID != userID {
		return repository.ErrSocialAccountNotFound
	}
	delete(m.byID, id)
	return nil
}

// Test fixture wiring the full route set over the fakes.

type fixture struct {
	router *gin.Engine
	users  *memUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	keyring, err := security.NewKeyring("test-secret", time.Hour)
	require.NoError(t, err)

	users := newMemUsers()
	images := newMemImages()
	projects := newMemProjects(images)
	images.projects = func() map[int64]*models.Project { return projects.byID }

	logger := zerolog.Nop()
	cfg := &config.AppConfig{Environment: "test"}

	h := HandlerSet{
		log:         logger,
		cfg:         cfg,
		keyring:     keyring,
		authService: service.NewAuthService(users, keyring, nil, logger),
		users:       users,
		profiles:    newMemProfiles(),
		projects:    projects,
		images:      images,
		skills:      newMemSkills(),
		services:    newMemServices(),
		socials:     newMemSocials(),
	}

	router := gin.New()
	h.Register(router.Group("/api"))

	return &fixture{router: router, users: users}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) register(t *testing.T, username, password, role string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/users", "", gin.H{
		"username": username,
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (f *fixture) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, string, json.RawMessage) {
	t.Helper()
	var resp struct {
		Status   bool            `json:"status"`
		Messages string          `json:"messages"`
		Data     json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Status, resp.Messages, resp.Data
}
