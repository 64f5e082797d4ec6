package swift

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/errs"
)

const (
	testPublicURL = "https://storage.example.com/v1/AUTH_test/assets/reports/q3.pdf"
	testKey       = "secret-key"
	testExpiry    = int64(1700000000)
)

// Signatures are precomputed independently; the canonical message is
// "METHOD\n<expiry>\n/v1/AUTH_test/assets/reports/q3.pdf".
func TestSignTempURL_Vectors(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		expires int64
		key     string
		wantSig string
	}{
		{
			name:    "GET",
			method:  "GET",
			expires: testExpiry,
			key:     testKey,
			wantSig: "3fc61dea848efa50cbb442d5d864fee3d60894920be0f7aa93e76e97edc95a55",
		},
		{
			name:    "method changes signature",
			method:  "PUT",
			expires: testExpiry,
			key:     testKey,
			wantSig: "810679a2d9e34354d28aa04e55215256adc488322289a5e7b3266f354aa5b615",
		},
		{
			name:    "adjacent expiry changes signature",
			method:  "GET",
			expires: testExpiry + 1,
			key:     testKey,
			wantSig: "9e762532808f9302862f5b46063a9afa218cba0a3b71f823359d57285ccb00e8",
		},
		{
			name:    "key changes signature",
			method:  "GET",
			expires: testExpiry,
			key:     "other-key",
			wantSig: "313fa363c8f06fd7c4a6106a7126e72cc2bd0848b193fc6b0e300752b14f9322",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := signTempURL(testPublicURL, tt.method, tt.expires, []byte(tt.key))
			require.NoError(t, err)

			want := "https://storage.example.com/v1/AUTH_test/assets/reports/q3.pdf" +
				"?temp_url_sig=" + tt.wantSig +
				"&temp_url_expires=" + strconv.FormatInt(tt.expires, 10)
			assert.Equal(t, want, got)
		})
	}
}

func TestSignTempURL_Deterministic(t *testing.T) {
	first, err := signTempURL(testPublicURL, "GET", testExpiry, []byte(testKey))
	require.NoError(t, err)
	second, err := signTempURL(testPublicURL, "GET", testExpiry, []byte(testKey))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSignTempURL_MissingVersionMarker(t *testing.T) {
	_, err := signTempURL("https://storage.example.com/assets/q3.pdf", "GET", testExpiry, []byte(testKey))
	require.Error(t, err)
	assert.True(t, errs.IsSigningFailed(err))
}
