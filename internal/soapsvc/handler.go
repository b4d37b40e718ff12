package soapsvc

import (
	"encoding/xml"
	"log/slog"
	"net/http"
)

const contentTypeSOAP = "application/soap+xml; charset=utf-8"

// createProductResponse echoes the created product back to the caller.
type createProductResponse struct {
	XMLName xml.Name `xml:"CreateProductResponse"`
	ID      string   `xml:"id"`
	Name    string   `xml:"name"`
	About   string   `xml:"about"`
	Price   string   `xml:"price"`
}

type patchProductResponse struct {
	XMLName xml.Name `xml:"PatchProductResponse"`
	ID      string   `xml:"id"`
	Name    string   `xml:"name"`
	About   string   `xml:"about"`
	Price   string   `xml:"price"`
}

type deleteProductResponse struct {
	XMLName xml.Name `xml:"DeleteProductResponse"`
	Message string   `xml:"message"`
}

// Handler serves the SOAP product endpoint.
type Handler struct {
	service *ProductService
	logger  *slog.Logger
}

// NewHandler creates a new SOAP handler.
func NewHandler(service *ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ServeProducts handles the /products endpoint. GET with a ?wsdl query
// serves the service description, POST processes a SOAP envelope.
func (h *Handler) ServeProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := r.URL.Query()["wsdl"]; ok {
			h.serveWSDL(w)
			return
		}
		http.Error(w, "missing wsdl query parameter", http.StatusBadRequest)
	case http.MethodPost:
		h.handleEnvelope(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveWSDL(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(productsWSDL)
}

func (h *Handler) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	var env requestEnvelope
	if err := xml.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&env); err != nil {
		h.writeFault(w, newFault("soap:Sender", "malformed SOAP envelope", http.StatusBadRequest))
		return
	}

	ctx := r.Context()

	switch {
	case env.Body.Create != nil:
		req := env.Body.Create
		product, err := h.service.CreateProduct(ctx, req.Name, req.About, req.Price)
		if err != nil {
			h.logError(r, "CreateProduct", err)
			h.writeFault(w, faultFor(err))
			return
		}
		h.writeResponse(w, createProductResponse{
			ID:    product.ID,
			Name:  product.Name,
			About: product.About,
			Price: product.Price.StringFixed(2),
		})
	case env.Body.Patch != nil:
		req := env.Body.Patch
		product, err := h.service.PatchProduct(ctx, req.ID, req.Name, req.About, req.Price)
		if err != nil {
			h.logError(r, "PatchProduct", err)
			h.writeFault(w, faultFor(err))
			return
		}
		h.writeResponse(w, patchProductResponse{
			ID:    product.ID,
			Name:  product.Name,
			About: product.About,
			Price: product.Price.StringFixed(2),
		})
	case env.Body.Delete != nil:
		req := env.Body.Delete
		if err := h.service.DeleteProduct(ctx, req.ID); err != nil {
			h.logError(r, "DeleteProduct", err)
			h.writeFault(w, faultFor(err))
			return
		}
		h.writeResponse(w, deleteProductResponse{Message: "product deleted"})
	default:
		h.writeFault(w, newFault("soap:Sender", "unknown operation", http.StatusBadRequest))
	}
}

// writeResponse marshals a success envelope. Faults are carried in the
// body with their own statusCode, so the transport status is always 200.
func (h *Handler) writeResponse(w http.ResponseWriter, content any) {
	h.writeEnvelope(w, newResponseEnvelope(content, nil))
}

func (h *Handler) writeFault(w http.ResponseWriter, fault *Fault) {
	h.writeEnvelope(w, newResponseEnvelope(nil, fault))
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, env responseEnvelope) {
	w.Header().Set("Content-Type", contentTypeSOAP)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(env); err != nil {
		h.logger.Error("encode soap envelope", slog.String("error", err.Error()))
	}
}

func (h *Handler) logError(r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), "soap operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
