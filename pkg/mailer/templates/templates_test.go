package templates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishusinha26/portfolio-backend/config"
)

func testConfig() *config.Config {
	return &config.Config{AppName: "portfolio-api", OwnerName: "Rishu Kumar Sinha", AdminEmail: "owner@x.com", OwnerTitle: "Full-Stack Developer"}
}

func TestRender_OperatorNotification(t *testing.T) {
	d := NewContactData(testConfig(), "Ana", "ana@x.com", "Hello", "hi <b>there</b>",
		WithIP("203.0.113.7"), WithUserAgent("curl/8"), WithTime(time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)))

	subject, text, html, err := Render(OperatorNotification, d)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact: Hello", subject)
	assert.Contains(t, text, "ana@x.com")
	assert.Contains(t, text, "203.0.113.7")
	assert.Contains(t, html, "hi &lt;b&gt;there&lt;/b&gt;", "html body must be escaped")
	assert.Contains(t, html, "curl/8")
}

func TestRender_SubmissionConfirmation(t *testing.T) {
	d := NewContactData(testConfig(), "Ana", "ana@x.com", "Portfolio Contact", "hi")

	subject, text, html, err := Render(SubmissionConfirmation, d)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for contacting Rishu Kumar Sinha", subject)
	assert.Contains(t, text, "Hi Ana")
	assert.Contains(t, html, "owner@x.com")
	assert.NotContains(t, html, "Phone:")
}

func TestRender_DeliveryAlertDefaults(t *testing.T) {
	d := NewContactData(testConfig(), "Ana", "ana@x.com", "Hello", "hi", WithMessageID("m1"))

	subject, text, _, err := Render(DeliveryFailureAlert, d)
	require.NoError(t, err)
	assert.Equal(t, "[portfolio-api] Contact notification failed: Hello", subject)
	assert.Contains(t, text, "Reason:     unknown")
	assert.Contains(t, text, "m1")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", ContactData{})
	assert.Error(t, err)
}

type stubResolver struct {
	geo Geo
	err error
}

func (s stubResolver) Lookup(context.Context, string) (Geo, error) { return s.geo, s.err }

func TestWithGeoFromIP(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	r := stubResolver{geo: Geo{City: "Bengaluru", Region: "Karnataka", Country: "India", Timezone: "Asia/Kolkata"}}

	d := NewContactData(testConfig(), "Ana", "ana@x.com", "s", "m", WithTime(at), WithGeoFromIP(context.Background(), r, "203.0.113.7"))
	assert.Equal(t, "Bengaluru, Karnataka, India", d.Location)
	assert.Contains(t, d.LocalTime, "08:34")

	private := NewContactData(testConfig(), "Ana", "ana@x.com", "s", "m", WithGeoFromIP(context.Background(), r, "10.0.0.1"))
	assert.Empty(t, private.Location)

	failing := NewContactData(testConfig(), "Ana", "ana@x.com", "s", "m", WithGeoFromIP(context.Background(), stubResolver{err: errors.New("down")}, "203.0.113.7"))
	assert.Empty(t, failing.Location)
}

func TestIPAPIResolver_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/203.0.113.7", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","country":"India","regionName":"Karnataka","city":"Tumakuru","timezone":"Asia/Kolkata"}`))
	}))
	defer srv.Close()

	g, err := IPAPIResolver{BaseURL: srv.URL}.Lookup(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "Tumakuru, Karnataka, India", FormatGeo(g))
}

func TestIPAPIResolver_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	}))
	defer srv.Close()

	_, err := IPAPIResolver{BaseURL: srv.URL}.Lookup(context.Background(), "203.0.113.7")
	assert.ErrorContains(t, err, "reserved range")
}

func TestPublicIP(t *testing.T) {
	assert.True(t, PublicIP("203.0.113.7"))
	assert.False(t, PublicIP("127.0.0.1"))
	assert.False(t, PublicIP("192.168.1.10"))
	assert.False(t, PublicIP("not-an-ip"))
}
