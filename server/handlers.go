package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/scenario"
	"github.com/lixenwraith/vi-gravity/vmath"
)

type bodyRequest struct {
	Name     string     `json:"name" validate:"max=64"`
	Kind     string     `json:"kind" validate:"required,oneof=rock moon planet star blackhole"`
	Mass     float64    `json:"mass" validate:"gt=0"`
	Radius   float64    `json:"radius" validate:"gte=0"`
	Position vmath.Vec2 `json:"position"`
	Velocity vmath.Vec2 `json:"velocity"`
}

type photonRequest struct {
	Shape    string     `json:"shape" validate:"required,oneof=single ring line"`
	Position vmath.Vec2 `json:"position"`
	// Direction applies to single photons
	Direction vmath.Vec2 `json:"direction"`
	// Spacing in meters applies to lines
	Spacing float64 `json:"spacing" validate:"gte=0"`
}

type pointRequest struct {
	Position vmath.Vec2 `json:"position"`
}

type launchRequest struct {
	From       vmath.Vec2  `json:"from"`
	To         vmath.Vec2  `json:"to"`
	RelativeTo core.Entity `json:"relative_to"`
}

type timeScaleRequest struct {
	TimeScale float64 `json:"time_scale" validate:"gt=0"`
}

// Both lengths are required; 0 stops tracking new entities
type tracksRequest struct {
	BodyLength   *int `json:"body_length" validate:"required,min=0"`
	PhotonLength *int `json:"photon_length" validate:"required,min=0"`
}

type scenarioRequest struct {
	Name      string `json:"name" validate:"required"`
	Randomize bool   `json:"randomize"`
	Seed      uint64 `json:"seed"`
}

type createdResponse struct {
	ID    core.Entity `json:"id,omitempty"`
	Count int         `json:"count,omitempty"`
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	snap := s.loop.Latest()
	resp := map[string]any{
		"status": "healthy",
		"run_id": snap.RunID,
		"frame":  snap.Frame,
		"paused": s.loop.IsPaused(),
	}
	if err := s.loop.LastError(); err != nil {
		resp["error"] = err.Error()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.loop.Latest())
}

func (s *Server) listBodies(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.loop.Latest().Bodies)
}

func (s *Server) getBody(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bodyID(w, r)
	if !ok {
		return
	}
	body, found := s.loop.Latest().Body(id)
	if !found {
		s.respondError(w, http.StatusNotFound, "body not found")
		return
	}
	s.respondJSON(w, http.StatusOK, body)
}

func (s *Server) createBody(w http.ResponseWriter, r *http.Request) {
	var req bodyRequest
	if !s.decode(w, r, &req) {
		return
	}
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := core.NewBody(kind, req.Mass, req.Radius, req.Position,
		core.WithName(req.Name), core.WithVelocity(req.Velocity))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var id core.Entity
	s.loop.RunSafe(func(sim *engine.Simulation) {
		id, err = sim.Insert(body)
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) deleteBody(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bodyID(w, r)
	if !ok {
		return
	}
	var removed bool
	s.loop.RunSafe(func(sim *engine.Simulation) {
		removed = sim.Remove(id)
	})
	if !removed {
		s.respondError(w, http.StatusNotFound, "body not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) focusBody(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bodyID(w, r)
	if !ok {
		return
	}
	var err error
	s.loop.RunSafe(func(sim *engine.Simulation) {
		err = sim.SetFocus(id)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) emitPhotons(w http.ResponseWriter, r *http.Request) {
	var req photonRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Shape == "line" && req.Spacing <= 0 {
		s.respondError(w, http.StatusBadRequest, "line spacing must be positive")
		return
	}

	var (
		n   int
		err error
	)
	s.loop.RunSafe(func(sim *engine.Simulation) {
		switch req.Shape {
		case "ring":
			n, err = sim.EmitRing(req.Position)
		case "line":
			n, err = sim.EmitLine(req.Position, req.Spacing)
		default:
			_, err = sim.EmitPhoton(req.Position, req.Direction)
			n = 1
		}
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, createdResponse{Count: n})
}

func (s *Server) clearPhotons(w http.ResponseWriter, r *http.Request) {
	var n int
	s.loop.RunSafe(func(sim *engine.Simulation) {
		n = sim.ClearPhotons()
	})
	s.respondJSON(w, http.StatusOK, createdResponse{Count: n})
}

func (s *Server) dropBlackHole(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if !s.decode(w, r, &req) {
		return
	}
	var (
		id  core.Entity
		err error
	)
	s.loop.RunSafe(func(sim *engine.Simulation) {
		id, err = sim.DropBlackHole(req.Position)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) launch(w http.ResponseWriter, r *http.Request) {
	var req launchRequest
	if !s.decode(w, r, &req) {
		return
	}
	var (
		id  core.Entity
		err error
	)
	s.loop.RunSafe(func(sim *engine.Simulation) {
		id, err = sim.Launch(req.From, req.To, req.RelativeTo)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) setTimeScale(w http.ResponseWriter, r *http.Request) {
	var req timeScaleRequest
	if !s.decode(w, r, &req) {
		return
	}
	var err error
	s.loop.RunSafe(func(sim *engine.Simulation) {
		err = sim.SetTimeScale(req.TimeScale)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, req)
}

func (s *Server) setTrackLengths(w http.ResponseWriter, r *http.Request) {
	var req tracksRequest
	if !s.decode(w, r, &req) {
		return
	}
	var err error
	s.loop.RunSafe(func(sim *engine.Simulation) {
		err = sim.SetTrackLengths(*req.BodyLength, *req.PhotonLength)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, req)
}

func (s *Server) clearTracks(w http.ResponseWriter, r *http.Request) {
	s.loop.RunSafe(func(sim *engine.Simulation) {
		sim.ClearTracks()
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	s.loop.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resume(w http.ResponseWriter, r *http.Request) {
	s.loop.Resume()
	w.WriteHeader(http.StatusNoContent)
}

// loadScenario accepts preset names only; files are loaded from the command line
func (s *Server) loadScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !s.decode(w, r, &req) {
		return
	}
	f, err := scenario.Preset(req.Name)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	setup, err := scenario.Build(f, scenario.BuildOptions{
		Randomize: req.Randomize,
		Seed:      req.Seed,
		Source:    "preset:" + req.Name,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.loop.RunSafe(func(sim *engine.Simulation) {
		err = sim.Reset(setup)
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.loop.Latest())
}

// Helper methods

func (s *Server) bodyID(w http.ResponseWriter, r *http.Request) (core.Entity, bool) {
	raw := chi.URLParam(r, "bodyID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		s.respondError(w, http.StatusBadRequest, "invalid body id")
		return 0, false
	}
	return core.Entity(id), true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, scenario.ErrUnknownPreset):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, core.ErrInvalidMass),
		errors.Is(err, core.ErrInvalidRadius),
		errors.Is(err, core.ErrInvalidVelocity),
		errors.Is(err, core.ErrInvalidFrequency):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

// respondJSON encodes before writing the header so an unencodable payload
// still gets an error status. Non-finite floats are the usual cause; the
// loop's halt error is reported with 409 in that case
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		msg := "encoding response: " + err.Error()
		status = http.StatusInternalServerError
		if haltErr := s.loop.LastError(); haltErr != nil {
			msg = haltErr.Error()
			status = http.StatusConflict
		}
		s.logger.Warn("failed to encode response", zap.Error(err), zap.Int("status", status))
		body, _ = json.Marshal(map[string]string{"error": msg})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body = append(body, '\n')
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}
