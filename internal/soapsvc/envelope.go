package soapsvc

import (
	"encoding/xml"
	"errors"
	"net/http"

	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

// SOAP 1.2 envelope namespace.
const envelopeNS = "http://www.w3.org/2003/05/soap-envelope"

// requestEnvelope is the inbound SOAP message. Exactly one operation
// element is expected in the body; matching is by local name so clients
// are free to prefix however they like.
type requestEnvelope struct {
	XMLName xml.Name    `xml:"Envelope"`
	Body    requestBody `xml:"Body"`
}

type requestBody struct {
	Create *createProductRequest `xml:"CreateProduct"`
	Patch  *patchProductRequest  `xml:"PatchProduct"`
	Delete *deleteProductRequest `xml:"DeleteProduct"`
}

type createProductRequest struct {
	Name  string `xml:"name"`
	About string `xml:"about"`
	Price string `xml:"price"`
}

type patchProductRequest struct {
	ID    string  `xml:"id"`
	Name  *string `xml:"name"`
	About *string `xml:"about"`
	Price *string `xml:"price"`
}

type deleteProductRequest struct {
	ID string `xml:"id"`
}

// responseEnvelope is the outbound SOAP message.
type responseEnvelope struct {
	XMLName xml.Name     `xml:"soap:Envelope"`
	NS      string       `xml:"xmlns:soap,attr"`
	Body    responseBody `xml:"soap:Body"`
}

type responseBody struct {
	Content any    `xml:",omitempty"`
	Fault   *Fault `xml:",omitempty"`
}

// Fault is the SOAP 1.2 fault shape extended with an explicit numeric
// status so callers never have to inspect transport-level codes.
type Fault struct {
	XMLName    xml.Name    `xml:"soap:Fault"`
	Code       faultCode   `xml:"soap:Code"`
	Reason     faultReason `xml:"soap:Reason"`
	StatusCode int         `xml:"statusCode"`
}

type faultCode struct {
	Value string `xml:"soap:Value"`
}

type faultReason struct {
	Text string `xml:"soap:Text"`
}

// newFault builds a fault from the (code, reason, status) triple.
func newFault(code, reason string, status int) *Fault {
	return &Fault{
		Code:       faultCode{Value: code},
		Reason:     faultReason{Text: reason},
		StatusCode: status,
	}
}

// faultFor maps an application error onto a SOAP fault. Client-side
// problems become Sender faults; everything else is a Receiver fault with
// a generic reason, details stay in the server log.
func faultFor(err error) *Fault {
	status := apperrors.HTTPStatus(err)

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrNotFound):
		var appErr *apperrors.AppError
		reason := err.Error()
		if errors.As(err, &appErr) {
			reason = appErr.Message
		}
		return newFault("soap:Sender", reason, status)
	default:
		return newFault("soap:Receiver", "internal server error", http.StatusInternalServerError)
	}
}

func newResponseEnvelope(content any, fault *Fault) responseEnvelope {
	return responseEnvelope{
		NS: envelopeNS,
		Body: responseBody{
			Content: content,
			Fault:   fault,
		},
	}
}
