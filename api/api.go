package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/rally-pacer/api/model"
	"github.com/a-bouts/rally-pacer/metrics"
	"github.com/a-bouts/rally-pacer/report"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/schedule"
	"github.com/a-bouts/rally-pacer/units"
)

const maxRoadmapSize = 1 << 20

type server struct {
	cpuprofile  bool
	calibration float64
	m           *metrics.Collector
	cache       *expirable.LRU[string, *report.Result]
}

func InitServer(cpuprofile bool, calibration float64, m *metrics.Collector) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile:  cpuprofile,
		calibration: calibration,
		m:           m,
		cache:       expirable.NewLRU[string, *report.Result](128, nil, time.Hour),
	}

	router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.HandleFunc("/pacer/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/pacer/api/v1").Subrouter()
	apiV1.HandleFunc("/schedule", s.schedule).Methods(http.MethodPost)
	apiV1.HandleFunc("/serialize", s.serialize).Methods(http.MethodPost)
	apiV1.HandleFunc("/interpolate", s.interpolate).Methods(http.MethodPost)

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) schedule(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	requestLogger := logger(req, "schedule")

	rm, err := s.readRoadmap(req)
	if err != nil {
		requestLogger.WithError(err).Warn("Bad schedule request")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format := report.JSON
	if f := req.URL.Query().Get("format"); f != "" {
		if format, err = report.ParseFormat(f); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	res, err := s.run(rm, requestLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch format {
	case report.YAML:
		w.Header().Set("Content-Type", "application/yaml")
	case report.Text:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}

	if res.Report.Failed() {
		requestLogger.Infof("Roadmap rejected with %d failures", len(res.Fails))
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := report.Write(w, res.Report, format); err != nil {
		requestLogger.WithError(err).Error("Error writing report")
	}
}

func (s *server) serialize(w http.ResponseWriter, req *http.Request) {
	requestLogger := logger(req, "serialize")

	rm, err := s.readRoadmap(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lines, err := roadmap.Parse(rm.Text)
	if err != nil {
		requestLogger.WithError(err).Info("Roadmap rejected by the parser")
		s.m.ParseErrors.Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	json.NewEncoder(w).Encode(model.Serialized{Text: roadmap.Serialize(lines)})
}

func (s *server) interpolate(w http.ResponseWriter, req *http.Request) {
	requestLogger := logger(req, "interpolate")

	base, err := roadmap.ParseLineNumber(req.URL.Query().Get("base"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	target, err := strconv.ParseFloat(req.URL.Query().Get("target"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid target distance: %w", err))
		return
	}
	if math.IsInf(target, 0) || math.IsNaN(target) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid target distance %q", req.URL.Query().Get("target")))
		return
	}

	rm, err := s.readRoadmap(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.run(rm, requestLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if res.Report.Failed() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(res.Report)
		return
	}

	t, ok := schedule.NewInterpolator(res.Schedule).TimeFrom(base, units.Km(target))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no waypoint at line %s", base))
		return
	}

	requestLogger.Debugf("Interpolate from %s to %.3f km: %s", base, target, t)

	out := model.Interpolation{Base: base.String(), Target: units.Km(target), Time: t.String()}
	if t.IsFinite() {
		h := t.Hours()
		out.Hours = &h
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		requestLogger.WithError(err).Error("Error writing interpolation")
	}
}

// run computes a roadmap, or returns the cached result of the same roadmap text
func (s *server) run(rm model.Roadmap, requestLogger *log.Entry) (*report.Result, error) {
	key := cacheKey(rm)
	if res, ok := s.cache.Get(key); ok {
		s.m.CacheHits.Inc()
		return res, nil
	}
	s.m.CacheMisses.Inc()

	start := time.Now()
	res, err := report.Run(rm.Text, rm.Calibration)
	if err != nil {
		requestLogger.WithError(err).Info("Roadmap rejected by the parser")
		s.m.ParseErrors.Inc()
		return nil, err
	}
	delta := time.Since(start)

	s.m.ObserveRun("api", delta, res.Waypoints(), res.Warnings(), res.Reasons())
	requestLogger.Infof("Schedule took %s (%d waypoints)", delta.String(), res.Waypoints())

	s.cache.Add(key, res)
	return res, nil
}

func (s *server) readRoadmap(req *http.Request) (model.Roadmap, error) {
	rm := model.Roadmap{Calibration: s.calibration}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxRoadmapSize))
	if err != nil {
		return rm, fmt.Errorf("reading body: %w", err)
	}

	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &rm); err != nil {
			return rm, fmt.Errorf("decoding roadmap: %w", err)
		}
		if rm.Calibration == 0 {
			rm.Calibration = s.calibration
		}
	} else {
		rm.Text = string(body)
	}

	if c := req.URL.Query().Get("calibration"); c != "" {
		rm.Calibration, err = strconv.ParseFloat(c, 64)
		if err != nil {
			return rm, fmt.Errorf("invalid calibration: %w", err)
		}
	}
	if rm.Calibration <= 0 {
		return rm, errors.New("calibration must be positive")
	}

	return rm, nil
}

func cacheKey(rm model.Roadmap) string {
	h := sha256.New()
	fmt.Fprintf(h, "%g\n", rm.Calibration)
	io.WriteString(h, rm.Text)
	return hex.EncodeToString(h.Sum(nil))
}

func writeError(w http.ResponseWriter, status int, err error) {
	out := model.Error{Error: err.Error()}
	var pe *roadmap.ParseError
	if errors.As(err, &pe) {
		out.Line = pe.Line
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(out)
}

func logger(req *http.Request, action string) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
