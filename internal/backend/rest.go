package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dbalogun/alumnihub/internal/common"
	"github.com/dbalogun/alumnihub/internal/models"
)

const (
	restPrefix = "/rest/v1/"

	// PostgREST media type that makes a filtered select return a single
	// object instead of a one-element array.
	singleObject = "application/vnd.pgrst.object+json"
)

// RESTStore is a Store backed by a PostgREST-style record API, such as a
// hosted Supabase project: tables under /rest/v1, filters as query
// parameters, sparse JSON bodies on PATCH.
type RESTStore struct {
	baseURL string
	apiKey  string
	token   string
	client  *http.Client
}

// NewRESTStore builds a client for the record API at baseURL. apiKey is
// sent on every request; sessionToken, when non-empty, is used as the
// bearer credential so row-level policies see the caller's identity.
func NewRESTStore(baseURL, apiKey, sessionToken string) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		token:   sessionToken,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *RESTStore) newRequest(ctx context.Context, method, table string, query url.Values, body []byte) (*http.Request, error) {
	u := s.baseURL + restPrefix + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}

	bearer := s.token
	if bearer == "" {
		bearer = s.apiKey
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes req and decodes the JSON response into out. Missing records
// map to common.ErrNotFound; every other failure wraps sentinel.
func (s *RESTStore) do(req *http.Request, out any, sentinel error) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotAcceptable:
		// PostgREST answers 406 when a single-object request matches no rows.
		return common.ErrNotFound
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", sentinel, err)
		}
	}
	return nil
}

func (s *RESTStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "*")

	req, err := s.newRequest(ctx, http.MethodGet, "profiles", q, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetch, err)
	}
	req.Header.Set("Accept", singleObject)

	var p models.Profile
	if err := s.do(req, &p, common.ErrFetch); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RESTStore) UpdateProfile(ctx context.Context, id string, fields models.Update) (*models.Profile, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding update: %v", common.ErrUpdate, err)
	}

	q := url.Values{}
	q.Set("id", "eq."+id)

	req, err := s.newRequest(ctx, http.MethodPatch, "profiles", q, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpdate, err)
	}
	req.Header.Set("Accept", singleObject)
	req.Header.Set("Prefer", "return=representation")

	var p models.Profile
	if err := s.do(req, &p, common.ErrUpdate); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RESTStore) GetCohort(ctx context.Context, id string) (*models.Cohort, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "*")

	req, err := s.newRequest(ctx, http.MethodGet, "sets", q, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetch, err)
	}
	req.Header.Set("Accept", singleObject)

	var c models.Cohort
	if err := s.do(req, &c, common.ErrFetch); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RESTStore) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "year.desc")

	req, err := s.newRequest(ctx, http.MethodGet, "sets", q, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetch, err)
	}

	var cs []models.Cohort
	if err := s.do(req, &cs, common.ErrFetch); err != nil {
		return nil, err
	}
	return cs, nil
}
