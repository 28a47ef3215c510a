package utils

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HTTPURL accepts absolute http(s) URLs with a host
var HTTPURL = validation.NewStringRule(isHTTPURL, "must be a valid URL")

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
