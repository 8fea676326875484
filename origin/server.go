package origin

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	nullLog "github.com/sirupsen/logrus/hooks/test"

	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/formats"
	"github.com/fanout/go-gripcontrol/pubcontrol"
	"github.com/fanout/go-gripcontrol/wscontext"
)

// DefaultPollTimeout is the long-poll timeout, in seconds, when the request
// does not give one.
const DefaultPollTimeout = 55

// Config contains the run time parameters for the server
type Config struct {
	// Logger is used to log requests. Defaults to a null logger.
	Logger *logrus.Logger

	// Key, when set, is the key Grip-Sig tokens must be signed with; requests
	// without a valid token are rejected.
	Key []byte

	// Publisher, when set, serves POST /publish/{channel}.
	Publisher *gripcontrol.GripPubControl
}

type server struct {
	logger    *logrus.Logger
	key       []byte
	publisher *gripcontrol.GripPubControl
}

// New creates a new origin server and wraps it as an http.Handler.
func New(conf Config) http.Handler {
	s := &server{
		logger:    conf.Logger,
		key:       conf.Key,
		publisher: conf.Publisher,
	}
	if s.logger == nil {
		logger, _ := nullLog.NewNullLogger()
		s.logger = logger
	}

	router := mux.NewRouter()
	router.Use(s.checkSig)
	router.HandleFunc("/stream/{channel}", s.stream).Methods(http.MethodGet)
	router.HandleFunc("/poll/{channel}", s.poll).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.websocket).Methods(http.MethodPost)
	router.HandleFunc("/publish/{channel}", s.publish).Methods(http.MethodPost)
	return router
}

// checkSig rejects requests that did not come through a proxy holding key.
func (s *server) checkSig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.key != nil && !gripcontrol.ValidateSig(r.Header.Get("Grip-Sig"), s.key) {
			s.logger.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}).Warn(ErrBadSignature)
			http.Error(w, ErrBadSignature.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) stream(w http.ResponseWriter, r *http.Request) {
	channel := mux.Vars(r)["channel"]
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Grip-Hold", string(gripcontrol.HoldModeStream))
	w.Header().Set("Grip-Channel", gripcontrol.CreateGripChannelHeader([]gripcontrol.Channel{{Name: channel}}))
	s.logger.WithField("channel", channel).Debug("holding stream")
	_, _ = fmt.Fprintf(w, "[stream open: %s]\n", channel)
}

func (s *server) poll(w http.ResponseWriter, r *http.Request) {
	channel := gripcontrol.Channel{
		Name:   mux.Vars(r)["channel"],
		PrevID: r.URL.Query().Get("prev-id"),
	}
	timeout := DefaultPollTimeout
	if t := r.URL.Query().Get("timeout"); t != "" {
		var err error
		if timeout, err = strconv.Atoi(t); err != nil || timeout <= 0 {
			http.Error(w, "timeout must be a positive integer", http.StatusBadRequest)
			return
		}
	}
	hold, err := gripcontrol.CreateHoldResponse(
		[]gripcontrol.Channel{channel},
		&formats.HTTPResponse{Code: http.StatusNoContent},
		timeout,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/grip-instruct")
	s.logger.WithFields(logrus.Fields{"channel": channel.Name, "timeout": timeout}).Debug("holding long-poll")
	_, _ = io.WriteString(w, hold)
}

func (s *server) websocket(w http.ResponseWriter, r *http.Request) {
	ws, err := wscontext.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log := s.logger.WithField("connection-id", ws.ID)

	if ws.IsOpening() {
		ws.Accept()
		if channel := r.URL.Query().Get("channel"); channel != "" {
			if err := ws.Subscribe(channel); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		log.Info("connection opened")
	}

	for ws.CanRecv() {
		messageType, message, err := ws.Recv()
		if closeErr, ok := err.(*websocket.CloseError); ok {
			log.WithField("code", closeErr.Code).Info("connection closed by client")
			ws.Close(closeErr.Code)
			break
		}
		if err != nil {
			log.WithError(err).Info("connection lost")
			break
		}
		if messageType == websocket.BinaryMessage {
			ws.SendBinary(message)
		} else {
			ws.Send(string(message))
		}
	}

	if err := ws.WriteResponse(w); err != nil {
		log.WithError(err).Error("writing response")
	}
}

func (s *server) publish(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		http.Error(w, ErrNoPublisher.Error(), http.StatusNotImplemented)
		return
	}
	channel := mux.Vars(r)["channel"]
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stream, err := formats.NewHTTPStream(append(body, '\n'))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item := pubcontrol.NewItem(
		formats.NewHTTPResponse(body),
		stream,
		formats.NewWebSocketMessage(string(body)),
	)
	item.ID = r.URL.Query().Get("id")
	item.PrevID = r.URL.Query().Get("prev-id")

	if err := s.publisher.PubControl.Publish(r.Context(), []string{channel}, item); err != nil {
		s.logger.WithError(err).WithField("channel", channel).Error("publish failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	s.logger.WithField("channel", channel).Debug("published")
	w.WriteHeader(http.StatusNoContent)
}
