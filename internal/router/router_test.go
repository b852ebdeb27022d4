package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pet-registry/internal/domain/credentials"
	"pet-registry/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA = "key-a"
	keyB = "key-b"
)

type testServer struct {
	URL       string
	UploadDir string
}

func newTestServer(t *testing.T, maxBody int64) testServer {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	h, err := router.NewRouter(router.Options{
		UploadDir: dir,
		Credentials: []credentials.Credential{
			{Key: credentials.DefaultKey, Username: "admin", Password: "admin"},
			{Key: keyA, Username: "ana", Password: "a"},
			{Key: keyB, Username: "bob", Password: "b"},
		},
		MaxRequestBytes: maxBody,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return testServer{URL: ts.URL, UploadDir: dir}
}

func TestHTTP_EndToEnd_RexScenario(t *testing.T) {
	ts := newTestServer(t, 0)

	// 1) Key por usuario/contraseña
	st, body := doReq(t, ts.URL, "GET", "/api/key?username=admin&password=admin", "")
	require.Equal(t, http.StatusOK, st, string(body))
	var keyResp struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(body, &keyResp))
	key := keyResp.Key
	assert.Equal(t, credentials.DefaultKey, key)

	// 2) Alta con foto opcional (sin foto)
	st, body = doMultipart(t, ts.URL, "/api/pets", key, map[string]string{
		"animal_type": "dog", "name": "Rex", "age": "3",
	}, nil)
	require.Equal(t, http.StatusCreated, st, string(body))

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Rex", created["name"])
	assert.Equal(t, "dog", created["animal_type"])
	assert.Equal(t, float64(3), created["age"])
	assert.Equal(t, key, created["user_id"])
	assert.Nil(t, created["pet_photo"])
	assert.Contains(t, created, "created_at")
	assert.NotContains(t, created, "updated_at")
	petID := created["pet_id"].(string)

	// 3) Aparece en my_pets
	mine := listPets(t, ts.URL, key, "")
	require.Len(t, mine, 1)
	assert.Equal(t, petID, mine[0]["pet_id"])
	assert.Contains(t, mine[0], "updated_at")

	// 4) Borrado
	st, body = doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, key)
	require.Equal(t, http.StatusOK, st, string(body))
	var del struct {
		Message    string         `json:"message"`
		DeletedPet map[string]any `json:"deleted_pet"`
	}
	require.NoError(t, json.Unmarshal(body, &del))
	assert.Equal(t, "Pet deleted successfully", del.Message)
	assert.Equal(t, petID, del.DeletedPet["pet_id"])

	assert.Empty(t, listPets(t, ts.URL, key, ""))

	// 5) Segundo borrado => 404
	st, body = doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, key)
	assert.Equal(t, http.StatusNotFound, st)
	assertDetail(t, body, "Pet not found")
}

func TestHTTP_KeyEndpoint(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := doReq(t, ts.URL, "GET", "/api/key?username=admin&password=wrong", "")
	assert.Equal(t, http.StatusUnauthorized, st)
	assertDetail(t, body, "Invalid username or password")

	st, body = doReq(t, ts.URL, "GET", "/api/key?username=&password=", "")
	assert.Equal(t, http.StatusUnauthorized, st)
	assertDetail(t, body, "Invalid username or password")

	st, _ = doReq(t, ts.URL, "GET", "/api/key?username=admin", "")
	assert.Equal(t, http.StatusUnprocessableEntity, st)
}

func TestHTTP_RequiresValidKey(t *testing.T) {
	ts := newTestServer(t, 0)

	routes := []struct{ method, path string }{
		{"GET", "/api/pets"},
		{"POST", "/api/create_pet_simple?animal_type=dog&name=Rex&age=1"},
		{"POST", "/api/pets"},
		{"PUT", "/api/pets/x?name=y"},
		{"DELETE", "/api/pets/x"},
		{"POST", "/api/pets/set_photo/x"},
	}
	for _, rt := range routes {
		for _, key := range []string{"", "not-a-key"} {
			st, body := doReq(t, ts.URL, rt.method, rt.path, key)
			assert.Equal(t, http.StatusUnauthorized, st, "%s %s key=%q", rt.method, rt.path, key)
			assertDetail(t, body, "Invalid auth_key")
		}
	}
}

func TestHTTP_CreateSimple(t *testing.T) {
	ts := newTestServer(t, 0)

	for _, age := range []int{0, 100} {
		st, body := createSimple(t, ts.URL, keyA, "Dog", " Rex ", fmt.Sprint(age))
		require.Equal(t, http.StatusCreated, st, string(body))

		var p map[string]any
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "dog", p["animal_type"])
		assert.Equal(t, "Rex", p["name"])
		assert.Equal(t, float64(age), p["age"])
		assert.Nil(t, p["pet_photo"])
		assert.Equal(t, p["created_at"], p["updated_at"])
	}

	rejections := []struct {
		typ, name, age string
		status         int
		detail         string
	}{
		{"dog", "Rex", "-1", http.StatusBadRequest, "Age cannot be negative"},
		{"dog", "Rex", "101", http.StatusBadRequest, "Age is unrealistic for a pet"},
		{"dragon", "Rex", "1", http.StatusBadRequest, "Invalid animal type. Allowed types: dog, cat, bird, fish, rabbit, hamster, turtle, parrot, other"},
		{"dog", "R", "1", http.StatusBadRequest, "Name must be at least 2 characters long"},
		{"dog", strings.Repeat("n", 51), "1", http.StatusBadRequest, "Name cannot exceed 50 characters"},
		{"", "Rex", "1", http.StatusBadRequest, "Missing required fields: animal_type and name are required"},
		{"dog", "Rex", "old", http.StatusUnprocessableEntity, ""},
	}
	for _, tc := range rejections {
		st, body := createSimple(t, ts.URL, keyA, tc.typ, tc.name, tc.age)
		assert.Equal(t, tc.status, st, "%+v body=%s", tc, string(body))
		if tc.detail != "" {
			assertDetail(t, body, tc.detail)
		}
	}

	// los rechazos no agregan nada
	assert.Len(t, listPets(t, ts.URL, keyA, ""), 2)

	st, _ := doReq(t, ts.URL, "POST", "/api/create_pet_simple?animal_type=dog&name=Rex", keyA)
	assert.Equal(t, http.StatusUnprocessableEntity, st)
}

func TestHTTP_CreateSimple_HugeAges(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := createSimple(t, ts.URL, keyA, "dog", "Rex", "99999999999999999999")
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Age is unrealistic for a pet")

	st, body = createSimple(t, ts.URL, keyA, "dog", "Rex", "-99999999999999999999")
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Age cannot be negative")

	assert.Empty(t, listPets(t, ts.URL, keyA, ""))
}

func TestHTTP_Ownership(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := createSimple(t, ts.URL, keyA, "cat", "Tom", "2")
	require.Equal(t, http.StatusCreated, st, string(body))
	petID := idOf(t, body)

	st, body = doReq(t, ts.URL, "PUT", "/api/pets/"+petID+"?name=Stolen", keyB)
	assert.Equal(t, http.StatusForbidden, st)
	assertDetail(t, body, "Permission denied")

	st, body = doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, keyB)
	assert.Equal(t, http.StatusForbidden, st)
	assertDetail(t, body, "You don't have permission to delete this pet")

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyB, nil, &filePart{"a.png", "image/png", []byte("x")})
	assert.Equal(t, http.StatusForbidden, st)
	assertDetail(t, body, "Permission denied")

	assert.Empty(t, listPets(t, ts.URL, keyB, ""))
	assert.Empty(t, listPets(t, ts.URL, keyB, "my_pets"))
	assert.Len(t, listPets(t, ts.URL, keyB, "all"), 1)

	// A sigue viendo el registro sin cambios
	mine := listPets(t, ts.URL, keyA, "")
	require.Len(t, mine, 1)
	assert.Equal(t, "Tom", mine[0]["name"])
}

func TestHTTP_Update(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := createSimple(t, ts.URL, keyA, "cat", "Tom", "2")
	require.Equal(t, http.StatusCreated, st)
	var orig map[string]any
	require.NoError(t, json.Unmarshal(body, &orig))
	petID := orig["pet_id"].(string)

	// sin validación: los valores pasan tal cual
	st, body = doReq(t, ts.URL, "PUT", "/api/pets/"+petID+"?age=150&animal_type=dragon", keyA)
	require.Equal(t, http.StatusOK, st, string(body))
	var upd map[string]any
	require.NoError(t, json.Unmarshal(body, &upd))
	assert.Equal(t, float64(150), upd["age"])
	assert.Equal(t, "dragon", upd["animal_type"])
	assert.Equal(t, "Tom", upd["name"])
	assert.Equal(t, orig["updated_at"], upd["updated_at"])

	st, _ = doReq(t, ts.URL, "PUT", "/api/pets/"+petID+"?age=abc", keyA)
	assert.Equal(t, http.StatusUnprocessableEntity, st)

	st, body = doReq(t, ts.URL, "PUT", "/api/pets/missing?name=x", keyA)
	assert.Equal(t, http.StatusNotFound, st)
	assertDetail(t, body, "Pet not found")
}

func TestHTTP_CreateWithPhoto(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
		"animal_type": " Parrot ", "name": "Polly", "age": "7",
	}, &filePart{"polly.JPG", "image/jpeg", []byte("jpeg-bytes")})
	require.Equal(t, http.StatusCreated, st, string(body))

	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "parrot", p["animal_type"])
	path, ok := p["pet_photo"].(string)
	require.True(t, ok)
	assert.Equal(t, ts.UploadDir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), stored)

	// duplicado sin distinguir mayúsculas
	st, body = doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
		"animal_type": "dog", "name": "POLLY", "age": "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "You already have a pet with this name")

	rejections := []struct {
		file   *filePart
		detail string
	}{
		{&filePart{"a.txt", "image/png", []byte("x")}, "Invalid file extension. Allowed: .jpg, .jpeg, .png, .gif, .bmp"},
		{&filePart{"a.png", "text/plain", []byte("x")}, "Invalid file type. Only images are allowed"},
		{&filePart{"a.png", "image/png", bytes.Repeat([]byte{1}, 5<<20+1)}, "File too large. Maximum size is 5MB"},
	}
	for _, tc := range rejections {
		st, body := doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
			"animal_type": "dog", "name": "Rex", "age": "1",
		}, tc.file)
		assert.Equal(t, http.StatusBadRequest, st)
		assertDetail(t, body, tc.detail)
	}

	st, body = doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{"animal_type": "", "name": "Rex", "age": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Animal type is required")

	st, body = doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{"animal_type": "dog", "name": "  ", "age": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Name is required")

	st, _ = doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{"animal_type": "dog", "name": "Rex"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, st)

	assert.Len(t, listPets(t, ts.URL, keyA, ""), 1)
	entries, err := os.ReadDir(ts.UploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHTTP_CreateWithPhoto_IgnoresQueryFields(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := doMultipart(t, ts.URL, "/api/pets?name=Qq&animal_type=cat&age=50", keyA, map[string]string{
		"animal_type": "dog", "name": "Rex", "age": "3",
	}, nil)
	require.Equal(t, http.StatusCreated, st, string(body))

	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Rex", p["name"])
	assert.Equal(t, "dog", p["animal_type"])
	assert.Equal(t, float64(3), p["age"])

	// un campo que sólo viene en la query cuenta como faltante
	st, _ = doMultipart(t, ts.URL, "/api/pets?age=3", keyA, map[string]string{
		"animal_type": "dog", "name": "Max",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, st)
}

func TestHTTP_CreateWithPhoto_HugeAge(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
		"animal_type": "dog", "name": "Rex", "age": "99999999999999999999",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Age is unrealistic for a pet")
}

func TestHTTP_Quota(t *testing.T) {
	ts := newTestServer(t, 0)

	for i := 0; i < 10; i++ {
		st, body := doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
			"animal_type": "fish", "name": fmt.Sprintf("Fish%02d", i), "age": "1",
		}, nil)
		require.Equal(t, http.StatusCreated, st, string(body))
	}

	st, body := doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
		"animal_type": "fish", "name": "Fish10", "age": "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Maximum number of pets (10) reached")

	// otro dueño no se ve afectado
	st, _ = doMultipart(t, ts.URL, "/api/pets", keyB, map[string]string{
		"animal_type": "fish", "name": "Fish10", "age": "1",
	}, nil)
	assert.Equal(t, http.StatusCreated, st)
}

func TestHTTP_SetPhoto(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := createSimple(t, ts.URL, keyA, "dog", "Rex", "3")
	require.Equal(t, http.StatusCreated, st)
	petID := idOf(t, body)

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyA, nil, &filePart{"big.jpg", "image/jpeg", bytes.Repeat([]byte{1}, 11<<20)})
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "File too large. Maximum size is 10MB")

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyA, nil, &filePart{"anim.gif", "image/gif", []byte("GIF89a")})
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "Invalid file type. Only JPG, JPEG or PNG formats are allowed")

	st, _ = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyA, map[string]string{"x": "y"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, st)

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/missing", keyA, nil, &filePart{"a.png", "image/png", []byte("x")})
	assert.Equal(t, http.StatusNotFound, st)
	assertDetail(t, body, "Pet not found")

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyA, nil, &filePart{"rex.png", "image/png", []byte("hi")})
	require.Equal(t, http.StatusOK, st, string(body))

	var res map[string]any
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, petID, res["id"])
	assert.Equal(t, "Rex", res["name"])
	assert.Equal(t, "data:image/png;base64,aGk=", res["pet_photo"])
	assert.NotContains(t, res, "pet_id")
	assert.NotContains(t, res, "updated_at")

	// copia en disco con prefijo del id
	entries, err := os.ReadDir(ts.UploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), petID+"_"))

	mine := listPets(t, ts.URL, keyA, "")
	require.Len(t, mine, 1)
	assert.Equal(t, "data:image/png;base64,aGk=", mine[0]["pet_photo"])
}

func TestHTTP_RequestBodyCap(t *testing.T) {
	ts := newTestServer(t, 4096)

	st, body := createSimple(t, ts.URL, keyA, "dog", "Rex", "3")
	require.Equal(t, http.StatusCreated, st)
	petID := idOf(t, body)

	st, body = doMultipart(t, ts.URL, "/api/pets/set_photo/"+petID, keyA, nil, &filePart{"a.png", "image/png", bytes.Repeat([]byte{1}, 8192)})
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "File too large. Maximum size is 10MB")

	st, body = doMultipart(t, ts.URL, "/api/pets", keyA, map[string]string{
		"animal_type": "dog", "name": "Max", "age": "1",
	}, &filePart{"a.png", "image/png", bytes.Repeat([]byte{1}, 8192)})
	assert.Equal(t, http.StatusBadRequest, st)
	assertDetail(t, body, "File too large. Maximum size is 5MB")
}

func TestHTTP_OpsEndpoints(t *testing.T) {
	ts := newTestServer(t, 0)

	st, body := doReq(t, ts.URL, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	// genera al menos una muestra por ruta
	_, _ = createSimple(t, ts.URL, keyA, "dog", "Rex", "3")

	st, body = doReq(t, ts.URL, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "pet_registry_http_requests_total")
	assert.Contains(t, string(body), `route="/api/create_pet_simple"`)

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/api/pets/set_photo/{pet_id}")
	assert.Contains(t, string(body), "Comparación exacta contra la tabla estática de credenciales.")
	assert.Contains(t, string(body), "faltan parámetros")
}

// -------------------------
// Helpers
// -------------------------

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func createSimple(t *testing.T, baseURL, key, typ, name, age string) (int, []byte) {
	t.Helper()
	q := url.Values{"animal_type": {typ}, "name": {name}, "age": {age}}
	return doReq(t, baseURL, "POST", "/api/create_pet_simple?"+q.Encode(), key)
}

func listPets(t *testing.T, baseURL, key, filter string) []map[string]any {
	t.Helper()
	path := "/api/pets"
	if filter != "" {
		path += "?filter_type=" + url.QueryEscape(filter)
	}
	st, body := doReq(t, baseURL, "GET", path, key)
	require.Equal(t, http.StatusOK, st, string(body))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func idOf(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		ID string `json:"pet_id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("missing pet_id body=%s", string(body))
	}
	return resp.ID
}

func assertDetail(t *testing.T, body []byte, want string) {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), "body=%s", string(body))
	assert.Equal(t, want, resp.Detail)
}

func doReq(t *testing.T, baseURL, method, path, key string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if key != "" {
		req.Header.Set("auth-key", key)
	}
	return send(t, req)
}

func doMultipart(t *testing.T, baseURL, path, key string, fields map[string]string, file *filePart) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pet_photo"; filename="%s"`, file.name))
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if key != "" {
		req.Header.Set("auth-key", key)
	}
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
