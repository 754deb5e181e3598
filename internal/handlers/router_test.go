package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/repository/postgres"
	"github.com/phamtheduy/portfolio/internal/service/achievement"
	"github.com/phamtheduy/portfolio/internal/service/auth"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
	"github.com/phamtheduy/portfolio/internal/service/project"
	"github.com/phamtheduy/portfolio/internal/service/user"
	"github.com/phamtheduy/portfolio/internal/testutil"
)

// Everything a handler test may need: a running server over tx scoped
// storage and the services to arrange state directly.
type testEnv struct {
	srvURL       string
	authService  *auth.AuthService
	userService  *user.UserService
	projects     *project.ProjectService
	achievements *achievement.AchievementService
}

func runServer(t *testing.T, tx pgx.Tx, testFunc func(env testEnv)) {
	t.Helper()

	storage := postgres.NewStorage(tx)
	noop := logger.NewNoOpLogger()

	tm, err := tokenmanager.New(tokenmanager.Config{SecretKey: "handler-test-secret"})
	require.NoError(t, err)

	hasher := auth.BcryptHasher{Cost: bcrypt.MinCost}
	authService, err := auth.NewService(auth.Config{Hasher: hasher}, tm, storage)
	require.NoError(t, err)

	projects := project.NewService(storage.Project())
	achievements := achievement.NewService(storage.Achievement(), storage.Project())

	srv := httptest.NewServer(NewRouter(authService, projects, achievements, nil, noop))
	t.Cleanup(srv.Close)

	testFunc(testEnv{
		srvURL:       srv.URL,
		authService:  authService,
		userService:  user.NewService(hasher, storage.User()),
		projects:     projects,
		achievements: achievements,
	})
}

// doJSON fires a request and returns status code with the raw body
func doJSON(t *testing.T, method string, url string, token string, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func Test_AuthEndpoints(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("login ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				_, err := env.userService.CreateUser(t.Context(), "admin", "password123")
				require.NoError(t, err)

				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/auth/login", "",
					`{"username": "admin", "password": "password123"}`)

				require.Equalf(t, http.StatusOK, status, "not expected code. Body: %s", body)

				var parsed struct {
					Success bool `json:"success"`
					Data    struct {
						AccessToken  string `json:"accessToken"`
						RefreshToken string `json:"refreshToken"`
						User         struct {
							Username string `json:"username"`
						} `json:"user"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &parsed))
				assert.True(t, parsed.Success)
				assert.Equal(t, "admin", parsed.Data.User.Username)
				assert.NotEmpty(t, parsed.Data.AccessToken)
				assert.NotEmpty(t, parsed.Data.RefreshToken)
				assert.NotEqual(t, parsed.Data.AccessToken, parsed.Data.RefreshToken)
			})
		})
	})

	t.Run("login wrong password", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				_, err := env.userService.CreateUser(t.Context(), "admin", "password123")
				require.NoError(t, err)

				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/auth/login", "",
					`{"username": "admin", "password": "wrong-password"}`)

				require.Equalf(t, http.StatusUnauthorized, status, "not expected code. Body: %s", body)
				require.JSONEq(t, `
					{
						"success": false,
						"error": {
							"code": "INVALID_CREDENTIALS",
							"message": "Invalid username or password"
						}
					}`, string(body))
			})
		})
	})

	t.Run("login unknown user gets the same error", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/auth/login", "",
					`{"username": "nobody", "password": "whatever123"}`)

				require.Equalf(t, http.StatusUnauthorized, status, "not expected code. Body: %s", body)
				assert.Contains(t, string(body), "INVALID_CREDENTIALS")
			})
		})
	})

	t.Run("login validation error", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/auth/login", "",
					`{"username": "ab", "password": "short"}`)

				require.Equalf(t, http.StatusBadRequest, status, "not expected code. Body: %s", body)
				assert.Contains(t, string(body), "VALIDATION_ERROR")
			})
		})
	})

	t.Run("logout is fine for a token never issued", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/auth/logout", "",
					`{"refreshToken": "never-issued"}`)

				require.Equalf(t, http.StatusOK, status, "not expected code. Body: %s", body)
				require.JSONEq(t, `{"success": true, "data": null}`, string(body))
			})
		})
	})
}

func Test_ProtectedEndpoints(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	login := func(t *testing.T, env testEnv) string {
		t.Helper()
		_, err := env.userService.CreateUser(t.Context(), "admin", "password123")
		require.NoError(t, err)

		result, err := env.authService.Login(t.Context(), "admin", "password123")
		require.NoError(t, err)
		return result.Pair.Access.Value
	}

	t.Run("create project with token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				token := login(t, env)

				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/projects", token,
					`{"title": "Payment gateway", "company": "Acme Corp", "technologies": ["Go"]}`)

				require.Equalf(t, http.StatusCreated, status, "not expected code. Body: %s", body)

				var parsed struct {
					Success bool `json:"success"`
					Data    struct {
						ID    int64  `json:"id"`
						Title string `json:"title"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &parsed))
				assert.True(t, parsed.Success)
				assert.NotZero(t, parsed.Data.ID)
				assert.Equal(t, "Payment gateway", parsed.Data.Title)
			})
		})
	})

	t.Run("create project without token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/projects", "",
					`{"title": "Payment gateway"}`)

				require.Equalf(t, http.StatusUnauthorized, status, "not expected code. Body: %s", body)
				require.JSONEq(t, `
					{
						"success": false,
						"error": {
							"code": "UNAUTHORIZED",
							"message": "Invalid or expired token"
						}
					}`, string(body))
			})
		})
	})

	t.Run("create project with garbage token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/projects", "not.a.jwt",
					`{"title": "Payment gateway"}`)

				require.Equalf(t, http.StatusUnauthorized, status, "not expected code. Body: %s", body)
				assert.Contains(t, string(body), "UNAUTHORIZED")
			})
		})
	})

	t.Run("update and delete achievement", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				token := login(t, env)

				status, body := doJSON(t, http.MethodPost, env.srvURL+"/api/achievements", token,
					`{"title": "Launched the portfolio", "description": "Shipped the first public version", "dateAchieved": "2024-05-01"}`)
				require.Equalf(t, http.StatusCreated, status, "not expected code. Body: %s", body)

				var created struct {
					Data struct {
						ID int64 `json:"id"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &created))

				url := fmt.Sprintf("%s/api/achievements/%d", env.srvURL, created.Data.ID)

				status, body = doJSON(t, http.MethodPut, url, token, `{"title": "Launched the site"}`)
				require.Equalf(t, http.StatusOK, status, "not expected code. Body: %s", body)
				assert.Contains(t, string(body), "Launched the site")

				status, body = doJSON(t, http.MethodDelete, url, token, "")
				require.Equalf(t, http.StatusOK, status, "not expected code. Body: %s", body)

				status, _ = doJSON(t, http.MethodGet, url, "", "")
				assert.Equal(t, http.StatusNotFound, status)
			})
		})
	})
}

func Test_PublicEndpoints(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("list projects with pagination envelope", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				for i := range 3 {
					_, err := env.projects.Create(t.Context(), models.Project{Title: fmt.Sprintf("Project %d", i)})
					require.NoError(t, err)
				}

				status, body := doJSON(t, http.MethodGet, env.srvURL+"/api/projects?page=1&limit=2", "", "")

				require.Equalf(t, http.StatusOK, status, "not expected code. Body: %s", body)

				var parsed struct {
					Success    bool              `json:"success"`
					Data       []json.RawMessage `json:"data"`
					Pagination struct {
						Page       int `json:"page"`
						Limit      int `json:"limit"`
						Total      int `json:"total"`
						TotalPages int `json:"totalPages"`
					} `json:"pagination"`
				}
				require.NoError(t, json.Unmarshal(body, &parsed))
				assert.True(t, parsed.Success)
				assert.Len(t, parsed.Data, 2)
				assert.Equal(t, 3, parsed.Pagination.Total)
				assert.Equal(t, 2, parsed.Pagination.TotalPages)
			})
		})
	})

	t.Run("get unknown project", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodGet, env.srvURL+"/api/projects/999999", "", "")

				require.Equalf(t, http.StatusNotFound, status, "not expected code. Body: %s", body)
				require.JSONEq(t, `
					{
						"success": false,
						"error": {
							"code": "PROJECT_NOT_FOUND",
							"message": "Project not found"
						}
					}`, string(body))
			})
		})
	})

	t.Run("unknown api route keeps the envelope", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodGet, env.srvURL+"/api/no-such-resource", "", "")

				require.Equalf(t, http.StatusNotFound, status, "not expected code. Body: %s", body)
				require.JSONEq(t, `
					{
						"success": false,
						"error": {
							"code": "NOT_FOUND",
							"message": "Resource not found"
						}
					}`, string(body))
			})
		})
	})

	t.Run("invalid project id in path", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			runServer(t, tx, func(env testEnv) {
				status, body := doJSON(t, http.MethodGet, env.srvURL+"/api/projects/abc", "", "")

				require.Equalf(t, http.StatusBadRequest, status, "not expected code. Body: %s", body)
				assert.Contains(t, string(body), "VALIDATION_ERROR")
			})
		})
	})
}
