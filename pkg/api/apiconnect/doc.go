// Package apiconnect holds the Connect clients and handlers for the
// ratecraft.v1 services. All of them exchange JSON using api.JSONCodec.
package apiconnect
