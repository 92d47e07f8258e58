package controllers

import (
	"net/http"

	"github.com/PaquitoSoft/small-shop/api/responses"
)

func Version(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"version": version})
	}
}
