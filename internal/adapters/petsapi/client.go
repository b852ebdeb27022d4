package petsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pet-registry/internal/platform/httpclient"
)

const authHeader = "auth-key"

// Client es un cliente tipado de la API de mascotas.
type Client struct {
	http *httpclient.Client
	key  string
}

func New(baseURL, key string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, key: key}, nil
}

// WithKey devuelve una copia que firma con otra auth key.
func (c *Client) WithKey(key string) *Client {
	return &Client{http: c.http, key: key}
}

type Pet struct {
	ID         string    `json:"pet_id"`
	UserID     string    `json:"user_id"`
	AnimalType string    `json:"animal_type"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Photo      *string   `json:"pet_photo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PhotoResult es la respuesta de set_photo.
type PhotoResult struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AnimalType string    `json:"animal_type"`
	Age        int       `json:"age"`
	Photo      string    `json:"pet_photo"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type DeleteResult struct {
	Message    string `json:"message"`
	DeletedPet Pet    `json:"deleted_pet"`
}

type NewPet struct {
	AnimalType string
	Name       string
	Age        int
}

// PetUpdate: nil = no enviar.
type PetUpdate struct {
	Name       *string
	Age        *int
	AnimalType *string
}

type Photo struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// APIError es una respuesta no-2xx con body {"detail": ...}.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Key obtiene la auth key para username/password.
func (c *Client) Key(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Key string `json:"key"`
	}
	q := url.Values{"username": {username}, "password": {password}}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/key", nil, q, &out); err != nil {
		return "", apiError(err)
	}
	return out.Key, nil
}

// ListPets: filter vacío => my_pets.
func (c *Client) ListPets(ctx context.Context, filter string) ([]Pet, error) {
	var q url.Values
	if filter != "" {
		q = url.Values{"filter_type": {filter}}
	}
	var out []Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/pets", c.headers(), q, &out); err != nil {
		return nil, apiError(err)
	}
	return out, nil
}

func (c *Client) CreatePetSimple(ctx context.Context, in NewPet) (Pet, error) {
	q := url.Values{
		"animal_type": {in.AnimalType},
		"name":        {in.Name},
		"age":         {strconv.Itoa(in.Age)},
	}
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/create_pet_simple", c.headers(), q, &out); err != nil {
		return Pet{}, apiError(err)
	}
	return out, nil
}

// CreatePet usa el alta multipart. photo puede ser nil.
func (c *Client) CreatePet(ctx context.Context, in NewPet, photo *Photo) (Pet, error) {
	req := httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/api/pets",
		Headers: c.headers(),
		Form: map[string]string{
			"animal_type": in.AnimalType,
			"name":        in.Name,
			"age":         strconv.Itoa(in.Age),
		},
	}
	if photo != nil {
		req.File = photoPart(*photo)
	}

	var out Pet
	if err := c.http.Do(ctx, req, &out); err != nil {
		return Pet{}, apiError(err)
	}
	return out, nil
}

func (c *Client) UpdatePet(ctx context.Context, petID string, in PetUpdate) (Pet, error) {
	q := url.Values{}
	if in.Name != nil {
		q.Set("name", *in.Name)
	}
	if in.Age != nil {
		q.Set("age", strconv.Itoa(*in.Age))
	}
	if in.AnimalType != nil {
		q.Set("animal_type", *in.AnimalType)
	}
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPut, "/api/pets/"+url.PathEscape(petID), c.headers(), q, &out); err != nil {
		return Pet{}, apiError(err)
	}
	return out, nil
}

func (c *Client) DeletePet(ctx context.Context, petID string) (DeleteResult, error) {
	var out DeleteResult
	if err := c.http.DoJSON(ctx, http.MethodDelete, "/api/pets/"+url.PathEscape(petID), c.headers(), nil, &out); err != nil {
		return DeleteResult{}, apiError(err)
	}
	return out, nil
}

func (c *Client) SetPhoto(ctx context.Context, petID string, photo Photo) (PhotoResult, error) {
	req := httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/api/pets/set_photo/" + url.PathEscape(petID),
		Headers: c.headers(),
		File:    photoPart(photo),
	}
	var out PhotoResult
	if err := c.http.Do(ctx, req, &out); err != nil {
		return PhotoResult{}, apiError(err)
	}
	return out, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{authHeader: c.key}
}

func photoPart(p Photo) *httpclient.File {
	return &httpclient.File{
		Field:       "pet_photo",
		Name:        p.Filename,
		ContentType: p.ContentType,
		Reader:      p.Body,
	}
}

// apiError convierte *httpclient.HTTPError en *APIError leyendo "detail".
func apiError(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal([]byte(he.Body), &body) != nil || body.Detail == "" {
		body.Detail = he.Body
	}
	return &APIError{StatusCode: he.StatusCode, Detail: body.Detail}
}
