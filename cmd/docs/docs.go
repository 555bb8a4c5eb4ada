// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/property_ledger/main.go -o cmd/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "get the status of server.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "root"
                ],
                "summary": "Show the status of server.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/contracts": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates the contract and its rent and deposit schedule in one step.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "contracts"
                ],
                "summary": "Create a rental contract",
                "parameters": [
                    {
                        "description": "Contract details",
                        "name": "contract",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateContractRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ContractResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Building not assigned",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/contracts/{contractID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "contracts"
                ],
                "summary": "Get a contract with its schedule",
                "parameters": [
                    {
                        "description": "Contract ID",
                        "name": "contractID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ContractResponse"
                        }
                    },
                    "404": {
                        "description": "Contract not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "contracts"
                ],
                "summary": "Delete a contract",
                "parameters": [
                    {
                        "description": "Contract ID",
                        "name": "contractID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Contract not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/contracts/{contractID}/renewals": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Moves the end date forward and schedules rent for the added months only.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "contracts"
                ],
                "summary": "Renew a contract",
                "parameters": [
                    {
                        "description": "Contract ID",
                        "name": "contractID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "New end date and optional rent",
                        "name": "renewal",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RenewContractRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ContractResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid renewal",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/contracts/{contractID}/schedules": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "contracts"
                ],
                "summary": "List the payment schedule of a contract",
                "parameters": [
                    {
                        "description": "Contract ID",
                        "name": "contractID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListSchedulesResponse"
                        }
                    }
                }
            }
        },
        "/invoices": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoices"
                ],
                "summary": "Create an invoice",
                "parameters": [
                    {
                        "description": "Invoice details",
                        "name": "invoice",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateInvoiceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Invoice number already used",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoices"
                ],
                "summary": "List invoices",
                "parameters": [
                    {
                        "description": "Tenant filter",
                        "name": "tenantID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Contract filter",
                        "name": "contractID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Invoice status",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 200)",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Rows to skip",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListInvoicesResponse"
                        }
                    }
                }
            }
        },
        "/invoices/{invoiceID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoices"
                ],
                "summary": "Get an invoice",
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "invoiceID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    },
                    "404": {
                        "description": "Invoice not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/invoices/{invoiceID}/recalculate": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoices"
                ],
                "summary": "Recompute an invoice from its payments",
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "name": "invoiceID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Invoice"
                        }
                    }
                }
            }
        },
        "/payments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records a payment and reconciles the linked invoice in the same step.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payments"
                ],
                "summary": "Record a payment",
                "parameters": [
                    {
                        "description": "Payment details",
                        "name": "payment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Payment"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payments"
                ],
                "summary": "List payments",
                "parameters": [
                    {
                        "description": "Tenant filter",
                        "name": "tenantID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Contract filter",
                        "name": "contractID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Invoice filter",
                        "name": "invoiceID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 200)",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Rows to skip",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListPaymentsResponse"
                        }
                    }
                }
            }
        },
        "/payments/{paymentID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payments"
                ],
                "summary": "Get a payment",
                "parameters": [
                    {
                        "description": "Payment ID",
                        "name": "paymentID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Payment"
                        }
                    },
                    "404": {
                        "description": "Payment not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Patches a payment and reconciles every invoice it was or is now linked to. An empty invoiceID unlinks it.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payments"
                ],
                "summary": "Update a payment",
                "parameters": [
                    {
                        "description": "Payment ID",
                        "name": "paymentID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Fields to change",
                        "name": "patch",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdatePaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Payment"
                        }
                    },
                    "400": {
                        "description": "Invalid or empty patch",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "payments"
                ],
                "summary": "Delete a payment",
                "parameters": [
                    {
                        "description": "Payment ID",
                        "name": "paymentID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Payment not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/tenants/{tenantID}/payment-history": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "List a tenant's rent payment history",
                "parameters": [
                    {
                        "description": "Tenant ID",
                        "name": "tenantID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 200)",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Rows to skip",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListPaymentHistoryResponse"
                        }
                    }
                }
            }
        },
        "/transactions": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records a transaction. Completed rent payments also update the tenant's payment history.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Record a financial transaction",
                "parameters": [
                    {
                        "description": "Transaction details",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TransactionRecord"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Outside access scope",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Reference number already used",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "Store busy",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists the transactions visible to the caller, newest first.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "List transactions",
                "parameters": [
                    {
                        "description": "Tenant filter",
                        "name": "tenantID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Contract filter",
                        "name": "contractID",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Transaction type",
                        "name": "type",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Transaction status",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 200)",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Rows to skip",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListTransactionsResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid paging",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Get a transaction",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TransactionRecord"
                        }
                    },
                    "403": {
                        "description": "Outside access scope",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Patches the mutable fields of a transaction. Unknown fields are rejected.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Update a transaction",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Fields to change",
                        "name": "patch",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TransactionRecord"
                        }
                    },
                    "400": {
                        "description": "Invalid or empty patch",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Outside access scope",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes a transaction together with its payment history row.",
                "tags": [
                    "transactions"
                ],
                "summary": "Delete a transaction",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "403": {
                        "description": "Outside access scope",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/transactions/{transactionID}/refunds": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records a refund against a completed transaction, up to its remaining refundable balance.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Refund a transaction",
                "parameters": [
                    {
                        "description": "Original transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Refund details",
                        "name": "refund",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RefundTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TransactionRecord"
                        }
                    },
                    "400": {
                        "description": "Invalid refund",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Outside access scope",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "domain.Contract": {
            "type": "object",
            "properties": {
                "apartmentID": {
                    "type": "string"
                },
                "buildingID": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "monthlyRent": {
                    "type": "number"
                },
                "ownerID": {
                    "type": "string"
                },
                "securityFee": {
                    "type": "number"
                },
                "startDate": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                }
            }
        },
        "domain.Invoice": {
            "type": "object",
            "properties": {
                "amountDue": {
                    "type": "number"
                },
                "amountPaid": {
                    "type": "number"
                },
                "apartmentID": {
                    "type": "string"
                },
                "billingPeriodEnd": {
                    "type": "string"
                },
                "billingPeriodStart": {
                    "type": "string"
                },
                "buildingID": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "invoiceID": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "number"
                }
            }
        },
        "domain.Payment": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "buildingID": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "invoiceID": {
                    "type": "string"
                },
                "isAdvancePayment": {
                    "type": "boolean"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                },
                "paymentID": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                }
            }
        },
        "domain.PaymentSchedule": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "apartmentID": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "paymentType": {
                    "type": "string"
                },
                "scheduleID": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                },
                "transactionID": {
                    "type": "string"
                }
            }
        },
        "domain.TenantPaymentHistory": {
            "type": "object",
            "properties": {
                "apartmentID": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "historyID": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "lateFee": {
                    "type": "number"
                },
                "paymentDate": {
                    "type": "string"
                },
                "paymentMonth": {
                    "type": "string"
                },
                "rentAmount": {
                    "type": "number"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                },
                "totalPaid": {
                    "type": "number"
                },
                "transactionID": {
                    "type": "string"
                }
            }
        },
        "domain.TransactionRecord": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "apartmentID": {
                    "type": "string"
                },
                "apartmentNumber": {
                    "type": "string"
                },
                "billingPeriodEnd": {
                    "type": "string"
                },
                "billingPeriodStart": {
                    "type": "string"
                },
                "buildingID": {
                    "type": "string"
                },
                "buildingName": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "floorNumber": {
                    "type": "string"
                },
                "lastUpdatedAt": {
                    "type": "string"
                },
                "lastUpdatedBy": {
                    "type": "string"
                },
                "lateFee": {
                    "type": "number"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "processingFee": {
                    "type": "number"
                },
                "receiptReference": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                },
                "relatedTransactionID": {
                    "type": "string"
                },
                "scheduleID": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                },
                "tenantName": {
                    "type": "string"
                },
                "transactionDate": {
                    "type": "string"
                },
                "transactionID": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "dto.ContractResponse": {
            "type": "object",
            "properties": {
                "contract": {
                    "$ref": "#/definitions/domain.Contract"
                },
                "schedules": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.PaymentSchedule"
                    }
                }
            }
        },
        "dto.CreateContractRequest": {
            "type": "object",
            "required": [
                "apartmentID",
                "monthlyRent",
                "startDate",
                "tenantID"
            ],
            "properties": {
                "apartmentID": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "monthlyRent": {
                    "type": "number"
                },
                "ownerID": {
                    "type": "string"
                },
                "securityFee": {
                    "type": "number"
                },
                "startDate": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                }
            }
        },
        "dto.CreateInvoiceRequest": {
            "type": "object",
            "required": [
                "billingPeriodEnd",
                "billingPeriodStart",
                "contractID",
                "dueDate",
                "totalAmount"
            ],
            "properties": {
                "billingPeriodEnd": {
                    "type": "string"
                },
                "billingPeriodStart": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "invoiceNumber": {
                    "type": "string"
                },
                "totalAmount": {
                    "type": "number"
                }
            }
        },
        "dto.CreateTransactionRequest": {
            "type": "object",
            "required": [
                "amount",
                "apartmentID",
                "tenantID",
                "type"
            ],
            "properties": {
                "amount": {
                    "type": "number"
                },
                "apartmentID": {
                    "type": "string"
                },
                "billingPeriodEnd": {
                    "type": "string"
                },
                "billingPeriodStart": {
                    "type": "string"
                },
                "contractID": {
                    "type": "string"
                },
                "currency": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "lateFee": {
                    "type": "number"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "processingFee": {
                    "type": "number"
                },
                "receiptReference": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                },
                "scheduleID": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "tenantID": {
                    "type": "string"
                },
                "transactionDate": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "dto.ListInvoicesResponse": {
            "type": "object",
            "properties": {
                "invoices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Invoice"
                    }
                },
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                }
            }
        },
        "dto.ListPaymentHistoryResponse": {
            "type": "object",
            "properties": {
                "history": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TenantPaymentHistory"
                    }
                },
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                }
            }
        },
        "dto.ListPaymentsResponse": {
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "payments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Payment"
                    }
                }
            }
        },
        "dto.ListSchedulesResponse": {
            "type": "object",
            "properties": {
                "schedules": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.PaymentSchedule"
                    }
                }
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "offset": {
                    "type": "integer"
                },
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TransactionRecord"
                    }
                }
            }
        },
        "dto.RecordPaymentRequest": {
            "type": "object",
            "required": [
                "amount",
                "contractID"
            ],
            "properties": {
                "amount": {
                    "type": "number"
                },
                "contractID": {
                    "type": "string"
                },
                "invoiceID": {
                    "type": "string"
                },
                "isAdvancePayment": {
                    "type": "boolean"
                },
                "notes": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                }
            }
        },
        "dto.RefundTransactionRequest": {
            "type": "object",
            "required": [
                "amount",
                "reason"
            ],
            "properties": {
                "amount": {
                    "type": "number"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "dto.RenewContractRequest": {
            "type": "object",
            "required": [
                "endDate"
            ],
            "properties": {
                "endDate": {
                    "type": "string"
                },
                "monthlyRent": {
                    "type": "number"
                }
            }
        },
        "dto.UpdatePaymentRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "number"
                },
                "invoiceID": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "paymentDate": {
                    "type": "string"
                },
                "paymentMethod": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "lateFee": {
                    "type": "number"
                },
                "processingFee": {
                    "type": "number"
                },
                "receiptReference": {
                    "type": "string"
                },
                "referenceNumber": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "transactionDate": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Property Ledger API",
	Description:      "Payments, schedules and invoice reconciliation for rental properties.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
