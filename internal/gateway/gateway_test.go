package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoseed/internal/domain"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client, err := New(Config{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		ProbeInterval: 10 * time.Millisecond,
		ProbeAttempts: 3,
	}, logger)
	require.NoError(t, err)
	return client
}

func newFakeService(t *testing.T) (*gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return router, srv
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestNew_DefaultsTimeout(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:8080"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout,
		"a zero timeout must not produce an unbounded HTTP client")
}

func TestClient_CreateJSON(t *testing.T) {
	router, srv := newFakeService(t)

	var nextID int64
	router.POST("/patients", func(c *gin.Context) {
		var payload domain.PatientPayload
		require.NoError(t, c.ShouldBindJSON(&payload))
		assert.NotEmpty(t, c.GetHeader("X-Request-ID"))

		id := atomic.AddInt64(&nextID, 1)
		c.JSON(http.StatusCreated, gin.H{
			"patientId": id,
			"firstName": payload.FirstName,
		})
	})

	client := newTestClient(t, srv.URL)

	// Act
	rec, err := client.CreateJSON(context.Background(), "/patients", domain.PatientPayload{
		FirstName: "Mary",
		LastName:  "Smith",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Int64("patientId"))
	assert.Equal(t, "Mary", rec.String("firstName"))
}

func TestClient_CreateJSON_RejectionIsSubmitError(t *testing.T) {
	router, srv := newFakeService(t)
	router.POST("/patients", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload"})
	})

	client := newTestClient(t, srv.URL)

	_, err := client.CreateJSON(context.Background(), "/patients", domain.PatientPayload{})
	require.Error(t, err)

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, "/patients", se.Path)
}

func TestClient_CreateJSON_BareSuccess(t *testing.T) {
	router, srv := newFakeService(t)
	router.POST("/followups", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	client := newTestClient(t, srv.URL)

	rec, err := client.CreateJSON(context.Background(), "/followups", domain.FollowupPayload{})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Empty(t, rec)
}

func TestClient_CreateForm(t *testing.T) {
	router, srv := newFakeService(t)
	router.POST("/variant-calling/jobs", func(c *gin.Context) {
		assert.Contains(t, c.ContentType(), "application/x-www-form-urlencoded")
		assert.Equal(t, "17", c.PostForm("tumorSampleId"))
		assert.Equal(t, "Mutect2", c.PostForm("caller"))
		c.JSON(http.StatusCreated, gin.H{"jobId": 5})
	})

	client := newTestClient(t, srv.URL)

	values := url.Values{}
	values.Set("tumorSampleId", "17")
	values.Set("caller", "Mutect2")

	rec, err := client.CreateForm(context.Background(), "/variant-calling/jobs", values)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.Int64("jobId"))
}

func TestClient_Get_Memoizes(t *testing.T) {
	router, srv := newFakeService(t)

	var calls int64
	router.GET("/patients/1", func(c *gin.Context) {
		atomic.AddInt64(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"patientId": 1})
	})

	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := client.Get(ctx, "/patients/1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.Int64("patientId"))
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "repeated reads should hit the cache")
}

func TestClient_WaitUntilReady(t *testing.T) {
	router, srv := newFakeService(t)

	var probes int64
	router.GET("/actuator/health", func(c *gin.Context) {
		// Healthy on the second probe.
		if atomic.AddInt64(&probes, 1) < 2 {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	client := newTestClient(t, srv.URL)

	err := client.WaitUntilReady(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&probes))
}

func TestClient_WaitUntilReady_Exhaustion(t *testing.T) {
	router, srv := newFakeService(t)
	router.GET("/actuator/health", func(c *gin.Context) {
		c.Status(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, srv.URL)

	err := client.WaitUntilReady(context.Background())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestClient_WaitUntilReady_ContextCancel(t *testing.T) {
	router, srv := newFakeService(t)
	router.GET("/actuator/health", func(c *gin.Context) {
		c.Status(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.WaitUntilReady(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	se := &SubmitError{Method: http.MethodPost, Path: "/patients", Err: inner}

	assert.ErrorIs(t, se, inner)
	assert.Contains(t, se.Error(), "/patients")
}
