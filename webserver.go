/*
Copyright © 2026 the MeritOrder authors.
This file is part of MeritOrder.

MeritOrder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeritOrder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeritOrder.  If not, see <http://www.gnu.org/licenses/>.*/

package meritorder

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridmodel/meritorder/loads"
)

// A Server exposes an Engine and a load profile to the presentation
// layer over HTTP. All endpoints return JSON; selections matching no
// data return status 404 with a message, distinct from computation
// failures, which return status 500.
type Server struct {
	engine  *Engine
	samples []loads.Sample
	log     *logrus.Logger
	mux     *http.ServeMux
}

// NewServer returns a Server answering queries for the given engine
// and load samples. If log is nil the standard logger is used.
func NewServer(engine *Engine, samples []loads.Sample, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		engine:  engine,
		samples: samples,
		log:     log,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/territories", s.territories)
	s.mux.HandleFunc("/api/fuels", s.fuels)
	s.mux.HandleFunc("/api/registry", s.registry)
	s.mux.HandleFunc("/api/summary", s.summary)
	s.mux.HandleFunc("/api/run", s.run)
	s.mux.HandleFunc("/api/efseries", s.efseries)
	s.mux.HandleFunc("/api/band", s.band)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves queries on the given address until the
// listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("serving dispatch model queries")
	return http.ListenAndServe(addr, s)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNoData) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no data for this selection"})
		return
	}
	s.log.WithError(err).WithField("url", r.URL.String()).Error("query failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) territories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.engine.Registry.Territories())
}

func (s *Server) fuels(w http.ResponseWriter, r *http.Request) {
	reg := s.engine.Registry.FilterTerritory(r.FormValue("territory"))
	if len(reg.Plants) == 0 {
		s.writeError(w, r, ErrNoData)
		return
	}
	s.writeJSON(w, reg.Fuels())
}

type plantJSON struct {
	ID              string  `json:"id"`
	Territory       string  `json:"territory"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Fuel            string  `json:"fuel"`
	CapacityMW      float64 `json:"capacity_mw"`
	EmissionsFactor float64 `json:"ef_kg_mwh"`
	CapacityFactor  float64 `json:"capacity_factor"`
}

func (s *Server) registry(w http.ResponseWriter, r *http.Request) {
	reg := s.engine.Registry.FilterTerritory(r.FormValue("territory"))
	if len(reg.Plants) == 0 {
		s.writeError(w, r, ErrNoData)
		return
	}
	o := make([]plantJSON, len(reg.Plants))
	for i, p := range reg.Plants {
		o[i] = plantJSON{
			ID:              p.ID,
			Territory:       p.Territory,
			Latitude:        p.Location.Y,
			Longitude:       p.Location.X,
			Fuel:            string(p.Fuel),
			CapacityMW:      p.Capacity,
			EmissionsFactor: p.EmissionsFactor,
			CapacityFactor:  p.CapacityFactor,
		}
	}
	s.writeJSON(w, o)
}

type fuelSummaryJSON struct {
	Fuel       string  `json:"fuel"`
	Plants     int     `json:"plants"`
	CapacityMW float64 `json:"capacity_mw"`
	AvgEF      float64 `json:"avg_ef_kg_mwh"`
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	reg := s.engine.Registry.FilterTerritory(r.FormValue("territory"))
	if len(reg.Plants) == 0 {
		s.writeError(w, r, ErrNoData)
		return
	}
	summary := reg.Summary()
	o := make([]fuelSummaryJSON, len(summary))
	for i, f := range summary {
		o[i] = fuelSummaryJSON{
			Fuel:       string(f.Fuel),
			Plants:     f.Plants,
			CapacityMW: f.Capacity.Value() / 1.0e6,
			AvgEF:      f.AvgEmissionsFactor.Value() * 3.6e9,
		}
	}
	s.writeJSON(w, o)
}

type dispatchPointJSON struct {
	PlantID            string  `json:"plant_id"`
	Fuel               string  `json:"fuel"`
	Cost               float64 `json:"cost_usd_mwh"`
	CumulativeCapacity float64 `json:"cum_capacity_mw"`
	CumulativeEF       float64 `json:"cum_ef_kg_mwh"`
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	runNum := 1
	if v := r.FormValue("run"); v != "" {
		var err error
		if runNum, err = strconv.Atoi(v); err != nil {
			http.Error(w, "run must be an integer", http.StatusBadRequest)
			return
		}
	}
	run, err := s.engine.Run(r.Context(), r.FormValue("territory"), runNum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o := make([]dispatchPointJSON, len(run.Points))
	for i, p := range run.Points {
		o[i] = dispatchPointJSON{
			PlantID:            p.Plant.ID,
			Fuel:               string(p.Plant.Fuel),
			Cost:               p.Cost,
			CumulativeCapacity: p.CumulativeCapacity,
			CumulativeEF:       p.CumulativeEF,
		}
	}
	s.writeJSON(w, o)
}

type efSeriesJSON struct {
	Unit       string      `json:"unit"`
	Timestamps []time.Time `json:"timestamps"`
	Runs       []Series    `json:"runs"`
	Band       []BandPoint `json:"band"`
}

func (s *Server) efseries(w http.ResponseWriter, r *http.Request) {
	if len(s.samples) == 0 {
		s.writeError(w, r, ErrNoData)
		return
	}
	series, err := s.engine.EFSeries(r.Context(), r.FormValue("territory"), s.samples)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	band, err := Band(series)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o := efSeriesJSON{
		Unit:       ParseDisplayUnit(r.FormValue("unit")).String(),
		Timestamps: make([]time.Time, len(s.samples)),
		Runs:       series,
		Band:       band,
	}
	for i, sample := range s.samples {
		o.Timestamps[i] = sample.Time
	}
	s.writeJSON(w, o)
}

type bandJSON struct {
	Unit       string      `json:"unit"`
	Timestamps []time.Time `json:"timestamps"`
	Band       []BandPoint `json:"band"`
}

func (s *Server) band(w http.ResponseWriter, r *http.Request) {
	if len(s.samples) == 0 {
		s.writeError(w, r, ErrNoData)
		return
	}
	band, err := s.engine.EFBand(r.Context(), r.FormValue("territory"), s.samples)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o := bandJSON{
		Unit:       ParseDisplayUnit(r.FormValue("unit")).String(),
		Timestamps: make([]time.Time, len(s.samples)),
		Band:       band,
	}
	for i, sample := range s.samples {
		o.Timestamps[i] = sample.Time
	}
	s.writeJSON(w, o)
}
