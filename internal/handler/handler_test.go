package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"artmuseum/internal/document"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/log"
	"artmuseum/internal/model"
)

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i interface{}) error { return s.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = structValidator{v: NewValidator()}
	return e
}

func request(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// MockCollectionRepository is a mock implementation of CollectionRepository.
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context) ([]model.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) UpdateOwner(ctx context.Context, id, ownerID int64) (*model.Collection, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func collectionRoutes(repo *MockCollectionRepository) *echo.Echo {
	e := newEcho()
	h := NewCollectionHandler(repo, "/api/mongo/Collections", log.Nop())
	e.GET("/api/mongo/Collections", h.List)
	e.GET("/api/mongo/Collections/:id", h.Get)
	e.POST("/api/mongo/Collections", h.Create)
	e.PUT("/api/mongo/Collections/:id/owner/:ownerId", h.UpdateOwner)
	e.DELETE("/api/mongo/Collections/:id", h.Delete)
	return e
}

func TestCollectionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockCollectionRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created",
			body: `{"name":"Impressionists","description":"19th century","owner":3}`,
			setupMock: func(m *MockCollectionRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Collection) bool {
					return c.Name == "Impressionists" && *c.OwnerID == 3 && *c.Description == "19th century"
				})).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Collection).ID = 11
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "name at the limit counts characters not bytes",
			body:           `{"name":"` + strings.Repeat("é", 255) + `"}`,
			setupMock:      func(m *MockCollectionRepository) { m.On("Create", mock.Anything, mock.Anything).Return(nil) },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "name too long",
			body:           `{"name":"` + strings.Repeat("a", 256) + `"}`,
			setupMock:      func(*MockCollectionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "name made only of whitespace",
			body:           `{"name":"   "}`,
			setupMock:      func(*MockCollectionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			setupMock:      func(*MockCollectionRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_BODY",
		},
		{
			name: "backend down",
			body: `{"name":"Prints"}`,
			setupMock: func(m *MockCollectionRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("mongo create: %w", apperrors.ErrBackendUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "BACKEND_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCollectionRepository)
			tt.setupMock(repo)

			rec := request(collectionRoutes(repo), http.MethodPost, "/api/mongo/Collections", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), `"code":"`+tt.expectedCode+`"`)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCollectionHandler_CreateSetsLocation(t *testing.T) {
	repo := new(MockCollectionRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Collection).ID = 11
	})

	rec := request(collectionRoutes(repo), http.MethodPost, "/api/mongo/Collections", `{"name":"Prints"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/mongo/Collections/11", rec.Header().Get(echo.HeaderLocation))
	assert.JSONEq(t, `{"CollectionId":11,"OwnerId":null,"Name":"Prints","Description":null}`, rec.Body.String())
}

func TestCollectionHandler_MissingAndInvalidIDs(t *testing.T) {
	repo := new(MockCollectionRepository)
	notFound := fmt.Errorf("mongo get collection 9: %w", apperrors.ErrNotFound)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, notFound)
	repo.On("UpdateOwner", mock.Anything, int64(9), int64(2)).Return(nil, notFound)
	repo.On("Delete", mock.Anything, int64(9)).Return(notFound)
	e := collectionRoutes(repo)

	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/api/mongo/Collections/9", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodPut, "/api/mongo/Collections/9/owner/2", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodDelete, "/api/mongo/Collections/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodGet, "/api/mongo/Collections/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPut, "/api/mongo/Collections/9/owner/x", "").Code)

	repo.AssertExpectations(t)
}

func TestCollectionHandler_InternalErrorsDoNotLeak(t *testing.T) {
	repo := new(MockCollectionRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("dial tcp 10.0.0.3:7687: secret detail"))

	rec := request(collectionRoutes(repo), http.MethodGet, "/api/mongo/Collections", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
}

// memDocuments is an in-memory DocumentRepository for Location.
type memDocuments struct {
	docs map[string]document.Location
}

func (m *memDocuments) GetByID(_ context.Context, id string) (*document.Location, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.ErrInvalidID
	}
	d, ok := m.docs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (m *memDocuments) List(context.Context) ([]document.Location, error) {
	out := []document.Location{}
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDocuments) FindBy(context.Context, string, any) ([]document.Location, error) {
	return nil, nil
}

func (m *memDocuments) Create(_ context.Context, d *document.Location) error {
	d.ID = primitive.NewObjectID()
	m.docs[d.ID.Hex()] = *d
	return nil
}

func (m *memDocuments) Replace(ctx context.Context, id string, d *document.Location) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	d.ID, _ = primitive.ObjectIDFromHex(id)
	m.docs[id] = *d
	return nil
}

func (m *memDocuments) Delete(ctx context.Context, id string) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	delete(m.docs, id)
	return nil
}

func TestDocumentHandlerLifecycle(t *testing.T) {
	e := newEcho()
	h := NewDocumentHandler[document.Location](&memDocuments{docs: map[string]document.Location{}}, "/api/mongo/Locations", log.Nop())
	e.GET("/api/mongo/Locations/:id", h.Get)
	e.POST("/api/mongo/Locations", h.Create)
	e.PUT("/api/mongo/Locations/:id", h.Replace)
	e.DELETE("/api/mongo/Locations/:id", h.Delete)

	rec := request(e, http.MethodPost, "/api/mongo/Locations", `{"Name":"East Wing","Room":"12"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	path := rec.Header().Get(echo.HeaderLocation)
	require.True(t, strings.HasPrefix(path, "/api/mongo/Locations/"))

	rec = request(e, http.MethodPut, path, `{"Name":"West Wing"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Name":"West Wing"`)
	assert.NotContains(t, rec.Body.String(), `"Room"`)

	assert.Equal(t, http.StatusNoContent, request(e, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodGet, "/api/mongo/Locations/not-hex", "").Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPost, "/api/mongo/Locations", `{"Room":"1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, request(e, http.MethodPost, "/api/mongo/Locations", `{"Name":" \t "}`).Code)
}
