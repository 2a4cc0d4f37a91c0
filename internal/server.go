package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"wayforpay/config"
	"wayforpay/entity"
	"wayforpay/services"
)

const (
	signatureRoute = "/signature/:type"
	prepareRoute   = "/prepare/:type"
	apiRoute       = "/api/:type"
	formRoute      = "/purchase/form"
	urlRoute       = "/purchase/url"
	widgetRoute    = "/purchase/widget"
	exchangesRoute = "/exchanges/:order_reference"

	maxBodySize = 1 << 20
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	gateway    services.Gateway
	database   services.Database
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:   conf,
		logger: NewLogger("server", false, nil),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(signatureRoute, s.signature)
	router.POST(prepareRoute, s.prepare)
	router.POST(apiRoute, s.query)
	router.POST(formRoute, s.purchaseForm)
	router.POST(urlRoute, s.purchaseUrl)
	router.POST(widgetRoute, s.purchaseWidget)
	router.GET(exchangesRoute, s.exchanges)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) SetGateway(gateway services.Gateway) {
	s.gateway = gateway
}

func (s *Server) SetDatabase(database services.Database) {
	s.database = database
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) signature(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	transactionType, fields, ok := s.readRequest(w, r, ps, reqID)
	if !ok {
		return
	}
	signature, err := s.gateway.BuildSignature(transactionType, fields)
	if err != nil {
		s.writeFailure(w, reqID, "signature", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{fieldMerchantSignature: signature})
}

func (s *Server) prepare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	transactionType, fields, ok := s.readRequest(w, r, ps, reqID)
	if !ok {
		return
	}
	prepared, err := s.gateway.Prepare(transactionType, fields)
	if err != nil {
		s.writeFailure(w, reqID, "prepare", err)
		return
	}
	writeJSON(w, http.StatusOK, prepared)
}

func (s *Server) query(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	transactionType, fields, ok := s.readRequest(w, r, ps, reqID)
	if !ok {
		return
	}
	s.logger.Info(fmt.Sprintf("[%s] processing request: %s %s", reqID, transactionType, fields.Text(fieldOrderReference)))
	response, err := s.gateway.Query(ctx, transactionType, fields)
	if err != nil {
		s.writeFailure(w, reqID, "query", err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) purchaseForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reqID := GetRequestID(WithRequestID(r.Context()))

	fields, ok := s.readFields(w, r, reqID)
	if !ok {
		return
	}
	form, err := s.gateway.BuildForm(fields)
	if err != nil {
		s.writeFailure(w, reqID, "purchase form", err)
		return
	}
	writeHTML(w, form)
}

func (s *Server) purchaseUrl(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reqID := GetRequestID(WithRequestID(r.Context()))

	fields, ok := s.readFields(w, r, reqID)
	if !ok {
		return
	}
	link, err := s.gateway.GeneratePurchaseURL(fields)
	if err != nil {
		s.writeFailure(w, reqID, "purchase url", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) purchaseWidget(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reqID := GetRequestID(WithRequestID(r.Context()))

	fields, ok := s.readFields(w, r, reqID)
	if !ok {
		return
	}
	button, err := s.gateway.BuildWidgetButton(fields, r.URL.Query().Get("callback"))
	if err != nil {
		s.writeFailure(w, reqID, "purchase widget", err)
		return
	}
	writeHTML(w, button)
}

func (s *Server) exchanges(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.database == nil {
		writeError(w, http.StatusServiceUnavailable, "journal is not enabled", nil)
		return
	}
	orderReference := ps.ByName("order_reference")
	exchanges, err := s.database.GetExchanges(ctx, orderReference)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] get exchanges %s", reqID, orderReference), err)
		writeError(w, http.StatusInternalServerError, "get exchanges failed", nil)
		return
	}
	if exchanges == nil {
		exchanges = []*entity.Exchange{}
	}
	writeJSON(w, http.StatusOK, exchanges)
}

func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params, reqID string) (entity.TransactionType, *entity.FieldMap, bool) {
	transactionType, known := entity.ParseTransactionType(ps.ByName("type"))
	if !known {
		s.logger.Warn(fmt.Sprintf("[%s] unknown transaction type: %s", reqID, ps.ByName("type")))
		writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %s", ErrUnknownTransactionType, transactionType), nil)
		return "", nil, false
	}
	fields, ok := s.readFields(w, r, reqID)
	return transactionType, fields, ok
}

func (s *Server) readFields(w http.ResponseWriter, r *http.Request, reqID string) (*entity.FieldMap, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] read request body", reqID), err)
		writeError(w, http.StatusBadRequest, "read request body failed", nil)
		return nil, false
	}
	fields := entity.NewFieldMap()
	if err = json.Unmarshal(body, fields); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] decode request body: %v", reqID, err))
		writeError(w, http.StatusBadRequest, "request body must be a JSON object", nil)
		return nil, false
	}
	return fields, true
}

func (s *Server) writeFailure(w http.ResponseWriter, reqID string, operation string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(fmt.Sprintf("[%s] %s", reqID, operation), err)
	} else {
		s.logger.Warn(fmt.Sprintf("[%s] %s: %v", reqID, operation, err))
	}
	writeError(w, status, err.Error(), MissingFields(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnknownTransactionType):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrMissingSignatureFields),
		errors.Is(err, ErrMissingRequiredFields),
		errors.Is(err, ErrInvalidCallback):
		return http.StatusBadRequest
	case errors.Is(err, ErrEncodingUnsupported),
		errors.Is(err, ErrInvalidConfiguration):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode error: %v", err)
	}
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		log.Printf("[server] write error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, fields []string) {
	body := map[string]any{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	writeJSON(w, status, body)
}
