package soapsvc

import _ "embed"

// productsWSDL is the static service description served at GET /products?wsdl.
//
//go:embed products.wsdl
var productsWSDL []byte
