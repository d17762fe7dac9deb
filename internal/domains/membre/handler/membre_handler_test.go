package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend/internal/domains/membre/model"
)

// stubService lets each test script the service layer per method.
type stubService struct {
	creerFn     func(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error)
	getFn       func(ctx context.Context, id uuid.UUID) (*model.Membre, error)
	getParCode  func(ctx context.Context, code string) (*model.Membre, error)
	listerTous  func(ctx context.Context) ([]model.Membre, error)
	parStatut   func(ctx context.Context, statut model.Statut) ([]model.Membre, error)
	actifs      func(ctx context.Context) ([]model.Membre, error)
	filleuls    func(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error)
	majFn       func(ctx context.Context, id uuid.UUID, req model.CreationMembreRequest) (*model.Membre, error)
	statutFn    func(ctx context.Context, id uuid.UUID, statut model.Statut) (*model.Membre, error)
	desactiver  func(ctx context.Context, id uuid.UUID, motif string) (*model.Membre, error)
	uploadPhoto func(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.Membre, error)
	supprimer   func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (s *stubService) CreerMembre(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error) {
	return s.creerFn(ctx, req)
}
func (s *stubService) GetMembre(ctx context.Context, id uuid.UUID) (*model.Membre, error) {
	return s.getFn(ctx, id)
}
func (s *stubService) GetMembreParCode(ctx context.Context, code string) (*model.Membre, error) {
	return s.getParCode(ctx, code)
}
func (s *stubService) ListerTousMembres(ctx context.Context) ([]model.Membre, error) {
	return s.listerTous(ctx)
}
func (s *stubService) ListerMembresParStatut(ctx context.Context, statut model.Statut) ([]model.Membre, error) {
	return s.parStatut(ctx, statut)
}
func (s *stubService) ListerMembresActifs(ctx context.Context) ([]model.Membre, error) {
	return s.actifs(ctx)
}
func (s *stubService) ListerFilleuls(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error) {
	return s.filleuls(ctx, parrainID)
}
func (s *stubService) MettreAJourMembre(ctx context.Context, id uuid.UUID, req model.CreationMembreRequest) (*model.Membre, error) {
	return s.majFn(ctx, id, req)
}
func (s *stubService) ChangerStatutMembre(ctx context.Context, id uuid.UUID, statut model.Statut) (*model.Membre, error) {
	return s.statutFn(ctx, id, statut)
}
func (s *stubService) DesactiverMembre(ctx context.Context, id uuid.UUID, motif string) (*model.Membre, error) {
	return s.desactiver(ctx, id, motif)
}
func (s *stubService) UploadPhoto(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.Membre, error) {
	return s.uploadPhoto(ctx, id, data, contentType)
}
func (s *stubService) SupprimerMembre(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.supprimer(ctx, id)
}

func sampleMembre() *model.Membre {
	return &model.Membre{
		ID:               uuid.New(),
		Code:             "M-JD-250001",
		Nom:              "Dupont",
		Prenom:           "Jean",
		Statut:           model.StatutActif,
		DateAdhesion:     time.Now(),
		DateModification: time.Now(),
		Actif:            true,
	}
}

func setupMembreRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMembreHandler(svc)

	r := gin.New()
	r.POST("/membres", h.CreerMembre)
	r.GET("/membres", h.ListerMembres)
	r.GET("/membres/actifs", h.ListerMembresActifs)
	r.GET("/membres/:id", h.GetMembre)
	r.GET("/membres/code/:code", h.GetMembreParCode)
	r.PUT("/membres/:id/statut", h.ChangerStatut)
	r.POST("/membres/:id/desactiver", h.DesactiverMembre)
	r.DELETE("/membres/:id", h.SupprimerMembre)
	return r
}

func TestCreerMembreHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubService{
			creerFn: func(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error) {
				m := sampleMembre()
				m.Nom = req.Nom
				return m, nil
			},
		}
		r := setupMembreRouter(svc)

		body, _ := json.Marshal(map[string]string{"nom": "Dupont", "prenom": "Jean"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/membres", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "M-JD-250001")
		assert.Contains(t, w.Body.String(), "en_regle")
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		r := setupMembreRouter(&stubService{})

		body, _ := json.Marshal(map[string]string{"nom": "D", "prenom": "Jean"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/membres", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		svc := &stubService{
			creerFn: func(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error) {
				return nil, model.ErrEmailDejaUtilise
			},
		}
		r := setupMembreRouter(svc)

		body, _ := json.Marshal(map[string]string{"nom": "Dupont", "prenom": "Jean", "email": "jean@asso.fr"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/membres", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetMembreHandler(t *testing.T) {
	t.Run("invalid id is 400", func(t *testing.T) {
		r := setupMembreRouter(&stubService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres/pas-un-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		svc := &stubService{
			getFn: func(ctx context.Context, id uuid.UUID) (*model.Membre, error) {
				return nil, model.ErrMembreNotFound
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListerMembresHandler(t *testing.T) {
	t.Run("statut filter is forwarded", func(t *testing.T) {
		var got model.Statut
		svc := &stubService{
			parStatut: func(ctx context.Context, statut model.Statut) ([]model.Membre, error) {
				got = statut
				return []model.Membre{*sampleMembre()}, nil
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres?statut=suspendu", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, model.StatutSuspendu, got)
	})

	t.Run("invalid statut is 400", func(t *testing.T) {
		r := setupMembreRouter(&stubService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres?statut=BANNI", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("actifs lists flagged members only", func(t *testing.T) {
		svc := &stubService{
			actifs: func(ctx context.Context) ([]model.Membre, error) {
				return []model.Membre{*sampleMembre()}, nil
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres/actifs", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"actif":true`)
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		svc := &stubService{
			listerTous: func(ctx context.Context) ([]model.Membre, error) {
				return []model.Membre{*sampleMembre(), *sampleMembre()}, nil
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/membres", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})
}

func TestChangerStatutHandler(t *testing.T) {
	id := uuid.New()

	t.Run("statut query is required and validated", func(t *testing.T) {
		r := setupMembreRouter(&stubService{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/membres/"+id.String()+"/statut?statut=PERDU", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("statut change returns the updated membre", func(t *testing.T) {
		svc := &stubService{
			statutFn: func(ctx context.Context, gotID uuid.UUID, statut model.Statut) (*model.Membre, error) {
				m := sampleMembre()
				m.ID = gotID
				m.Statut = statut
				return m, nil
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/membres/"+id.String()+"/statut?statut=RADIE", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"RADIE"`)
	})
}

func TestDesactiverMembreHandler(t *testing.T) {
	id := uuid.New()

	t.Run("motif is required", func(t *testing.T) {
		r := setupMembreRouter(&stubService{})
		body, _ := json.Marshal(map[string]string{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/membres/"+id.String()+"/desactiver", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deactivation succeeds", func(t *testing.T) {
		var gotMotif string
		svc := &stubService{
			desactiver: func(ctx context.Context, gotID uuid.UUID, motif string) (*model.Membre, error) {
				gotMotif = motif
				m := sampleMembre()
				m.Actif = false
				return m, nil
			},
		}
		r := setupMembreRouter(svc)
		body, _ := json.Marshal(map[string]string{"motif": "cotisation impayée"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/membres/"+id.String()+"/desactiver", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cotisation impayée", gotMotif)
		assert.Contains(t, w.Body.String(), `"en_regle":false`)
	})
}

func TestSupprimerMembreHandler(t *testing.T) {
	t.Run("delete returns 204", func(t *testing.T) {
		svc := &stubService{
			supprimer: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return true, nil
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/membres/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown membre is 404", func(t *testing.T) {
		svc := &stubService{
			supprimer: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return false, model.ErrMembreNotFound
			},
		}
		r := setupMembreRouter(svc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/membres/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
