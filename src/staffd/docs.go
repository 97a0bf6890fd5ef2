// Package main staffd API
//
// @title           staffd API
// @version         1.0
// @description     Department and employee records REST API.
//
// @host            localhost:8080
// @BasePath        /
// @schemes         http
package main
