package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/testmaker/quizapi/internal/adapters/http/dto"
	"github.com/testmaker/quizapi/internal/adapters/http/middleware"
	"github.com/testmaker/quizapi/internal/adapters/repository/memory"
	"github.com/testmaker/quizapi/internal/app"
	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/mocks"
	"github.com/testmaker/quizapi/internal/ports"
)

const adminID = "0d6a2f7e-6f34-4c1b-9a7e-2f1c0d1e9a11"

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one minute per reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Minute)

	return c.now
}

type quizFixture struct {
	router  *gin.Engine
	quizzes ports.QuizRepository
	users   *memory.UserStore
}

func newQuizFixture(t *testing.T, quizzes ports.QuizRepository, withAdmin bool) *quizFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := memory.NewUserStore()
	if withAdmin {
		require.NoError(t, users.Insert(context.Background(), &domain.User{ID: adminID, UserName: app.DefaultAuthorName}))
	}

	clock := &stepClock{now: baseTime}
	service := app.NewQuizService(app.QuizServiceConfig{
		Quizzes: quizzes,
		Clock:   clock.Now,
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Logger:  logger,
	})

	router := gin.New()
	router.Use(middleware.Identify(nil))

	api := router.Group("/api")
	NewQuizHandler(service, app.NewAuthorService(users, "", logger)).RegisterRoutes(api)
	NewAnswerHandler(app.NewAnswerService(clock.Now)).RegisterRoutes(api)

	return &quizFixture{router: router, quizzes: quizzes, users: users}
}

func (f *quizFixture) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func (f *quizFixture) seed(t *testing.T, titles ...string) []*domain.Quiz {
	t.Helper()

	out := make([]*domain.Quiz, 0, len(titles))
	for i, title := range titles {
		created := baseTime.Add(time.Duration(i) * time.Hour)
		q := &domain.Quiz{Title: title, UserID: adminID, CreatedDate: created, LastModifiedDate: created}
		require.NoError(t, f.quizzes.Insert(context.Background(), q))
		out = append(out, q)
	}

	return out
}

func decodeQuiz(t *testing.T, w *httptest.ResponseRecorder) app.QuizViewModel {
	t.Helper()

	var vm app.QuizViewModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vm))

	return vm
}

func decodeQuizzes(t *testing.T, w *httptest.ResponseRecorder) []app.QuizViewModel {
	t.Helper()

	var list []app.QuizViewModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))

	return list
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestQuizHandler_Get(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)
	seeded := f.seed(t, "Capitals")

	w := f.do(t, http.MethodGet, "/api/quiz/1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "{\n    \"Id\": 1,")
	assert.NotContains(t, w.Body.String(), "UserId")

	vm := decodeQuiz(t, w)
	assert.Equal(t, seeded[0].ID, vm.ID)
	assert.Equal(t, "Capitals", vm.Title)
	assert.True(t, baseTime.Equal(vm.CreatedDate))
}

func TestQuizHandler_Get_NotFound(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	w := f.do(t, http.MethodGet, "/api/quiz/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "QuizID 999 has not been found", resp.Error)
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Code)
}

func TestQuizHandler_NonIntegerSegmentsDoNotRoute(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/quiz/abc"},
		{http.MethodDelete, "/api/quiz/1.5"},
		{http.MethodGet, "/api/quiz/Latest/ten"},
		{http.MethodGet, "/api/quiz/ByTitle/x"},
		{http.MethodGet, "/api/quiz/Random/-"},
		{http.MethodGet, "/api/answer/All/q1"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := f.do(t, tc.method, tc.path, "")
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestQuizHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		withAdmin  bool
		headers    []string
		wantAuthor string
	}{
		{name: "author from a known subject", headers: []string{"X-User-ID", "user-42"}, wantAuthor: "user-42"},
		{name: "fallback author without subject", withAdmin: true, wantAuthor: adminID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewQuizStore()
			f := newQuizFixture(t, store, tt.withAdmin)
			require.NoError(t, f.users.Insert(context.Background(), &domain.User{ID: "user-42", UserName: "alice"}))

			body := `{"Id":55,"Title":"Capitals","Description":"Europe","Text":"Name them","Notes":"n",` +
				`"CreatedDate":"1999-01-01T00:00:00Z","LastModifiedDate":"1999-01-01T00:00:00Z"}`
			w := f.do(t, http.MethodPut, "/api/quiz", body, tt.headers...)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			vm := decodeQuiz(t, w)
			assert.Equal(t, int64(1), vm.ID, "client id is ignored")
			assert.Equal(t, "Capitals", vm.Title)
			assert.Equal(t, "Europe", vm.Description)
			assert.True(t, vm.CreatedDate.After(baseTime), "client dates are ignored")
			assert.Equal(t, vm.CreatedDate, vm.LastModifiedDate)

			stored, err := store.FindByID(context.Background(), vm.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuthor, stored.UserID)
		})
	}
}

func TestQuizHandler_Create_RejectsUnknownSubjects(t *testing.T) {
	tests := []struct {
		name    string
		subject string
	}{
		{name: "unprovisioned subject", subject: "user-404"},
		{name: "oversized subject", subject: strings.Repeat("x", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewQuizStore()
			f := newQuizFixture(t, store, true)

			w := f.do(t, http.MethodPut, "/api/quiz", `{"Title":"Capitals"}`, "X-User-ID", tt.subject)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w).Code)

			count, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count, "nothing is stored")
		})
	}
}

func TestQuizHandler_Create_RoundTrip(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	created := decodeQuiz(t, f.do(t, http.MethodPut, "/api/quiz", `{"Title":"Rivers","Text":"Longest?"}`))

	w := f.do(t, http.MethodGet, "/api/quiz/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeQuiz(t, w))
}

func TestQuizHandler_Create_BadPayloads(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withAdmin  bool
		wantStatus int
		wantCode   string
	}{
		{name: "missing body", body: "", withAdmin: true, wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInvalidRequest},
		{name: "null body", body: "null", withAdmin: true, wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInvalidRequest},
		{name: "malformed json", body: `{"Title":`, withAdmin: true, wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInvalidRequest},
		{name: "blank title", body: `{"Title":"  "}`, withAdmin: true, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidation},
		{name: "fallback author not provisioned", body: `{"Title":"T"}`, wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewQuizStore()
			f := newQuizFixture(t, store, tt.withAdmin)

			w := f.do(t, http.MethodPut, "/api/quiz", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)

			count, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count, "nothing is stored")
		})
	}
}

func TestQuizHandler_Update(t *testing.T) {
	store := memory.NewQuizStore()
	f := newQuizFixture(t, store, true)
	seeded := f.seed(t, "Old title")

	body := `{"Id":1,"Title":"New title","Description":"d","Text":"t","Notes":"n","CreatedDate":"2001-01-01T00:00:00Z"}`
	w := f.do(t, http.MethodPost, "/api/quiz", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	vm := decodeQuiz(t, w)
	assert.Equal(t, "New title", vm.Title)
	assert.True(t, seeded[0].CreatedDate.Equal(vm.CreatedDate), "created date is kept")
	assert.True(t, vm.LastModifiedDate.After(vm.CreatedDate), "last modified is refreshed")

	stored, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, adminID, stored.UserID)
	assert.Equal(t, "n", stored.Notes)
}

func TestQuizHandler_Update_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name: "unknown id", body: `{"Id":77,"Title":"Ghost"}`,
			wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeNotFound, wantError: "QuizID 77 has not been found",
		},
		{
			name: "unknown id wins over a blank title", body: `{"Id":999999,"Title":""}`,
			wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeNotFound, wantError: "QuizID 999999 has not been found",
		},
		{
			name: "blank title on a known quiz", body: `{"Id":1,"Title":"  "}`,
			wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidation,
		},
		{
			name: "title too long on a known quiz", body: `{"Id":1,"Title":"` + strings.Repeat("x", 256) + `"}`,
			wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidation,
		},
		{
			name: "missing body", body: "",
			wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewQuizStore()
			f := newQuizFixture(t, store, true)
			f.seed(t, "Kept")

			w := f.do(t, http.MethodPost, "/api/quiz", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}

			stored, err := store.FindByID(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, "Kept", stored.Title, "nothing is written")
		})
	}
}

func TestQuizHandler_Delete(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)
	f.seed(t, "Doomed")

	w := f.do(t, http.MethodDelete, "/api/quiz/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/quiz/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/quiz/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "QuizID 1 has not been found", decodeError(t, w).Error)
}

func TestQuizHandler_Listings(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	titles := []string{"Mountains", "Capitals", "Rivers", "Deserts", "Lakes", "Islands",
		"Oceans", "Volcanoes", "Forests", "Glaciers", "Bays", "Canyons"}
	f.seed(t, titles...)

	t.Run("latest defaults to ten newest", func(t *testing.T) {
		list := decodeQuizzes(t, f.do(t, http.MethodGet, "/api/quiz/Latest", ""))

		require.Len(t, list, 10)
		assert.Equal(t, "Canyons", list[0].Title)
		assert.True(t, slices.IsSortedFunc(list, func(a, b app.QuizViewModel) int {
			return b.CreatedDate.Compare(a.CreatedDate)
		}))
	})

	t.Run("latest with num", func(t *testing.T) {
		list := decodeQuizzes(t, f.do(t, http.MethodGet, "/api/quiz/Latest/3", ""))

		require.Len(t, list, 3)
		assert.Equal(t, []string{"Canyons", "Bays", "Glaciers"}, []string{list[0].Title, list[1].Title, list[2].Title})
	})

	t.Run("by title is ordered", func(t *testing.T) {
		list := decodeQuizzes(t, f.do(t, http.MethodGet, "/api/quiz/ByTitle/4", ""))

		require.Len(t, list, 4)
		assert.Equal(t, []string{"Bays", "Canyons", "Capitals", "Deserts"},
			[]string{list[0].Title, list[1].Title, list[2].Title, list[3].Title})
	})

	t.Run("random is bounded and drawn from the pool", func(t *testing.T) {
		list := decodeQuizzes(t, f.do(t, http.MethodGet, "/api/quiz/Random/3", ""))

		require.Len(t, list, 3)
		for _, q := range list {
			assert.Contains(t, titles, q.Title)
		}
	})

	for _, path := range []string{"/api/quiz/Latest/0", "/api/quiz/ByTitle/0", "/api/quiz/Random/-2"} {
		t.Run("explicit non-positive count "+path, func(t *testing.T) {
			w := f.do(t, http.MethodGet, path, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, "[]", w.Body.String())
		})
	}
}

func TestQuizHandler_Listings_EmptyStore(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	for _, path := range []string{"/api/quiz/Latest", "/api/quiz/ByTitle/5", "/api/quiz/Random"} {
		w := f.do(t, http.MethodGet, path, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	}
}

func TestQuizHandler_StoreFailures(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*mocks.MockQuizRepository)
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name: "store unavailable",
			setupMock: func(m *mocks.MockQuizRepository) {
				m.EXPECT().FindByID(mock.Anything, int64(3)).
					Return(nil, domain.NewUnavailableError("store", "connection refused"))
			},
			path:       "/api/quiz/3",
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrorCodeUnavailable,
		},
		{
			name: "unexpected store error is not leaked",
			setupMock: func(m *mocks.MockQuizRepository) {
				m.EXPECT().ListLatest(mock.Anything, 10).Return(nil, assert.AnError)
			},
			path:       "/api/quiz/Latest",
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockQuizRepository(t)
			tt.setupMock(repo)

			f := newQuizFixture(t, repo, true)
			w := f.do(t, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotContains(t, resp.Error, assert.AnError.Error())
		})
	}
}

func TestAnswerHandler_All(t *testing.T) {
	f := newQuizFixture(t, memory.NewQuizStore(), true)

	w := f.do(t, http.MethodGet, "/api/answer/All/12", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"QuestionId": 12`)

	var answers []app.AnswerViewModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answers))
	require.Len(t, answers, 5)
	assert.Equal(t, "Friends and family", answers[0].Text)
	assert.Equal(t, "Sample Answer 5", answers[4].Text)
}
