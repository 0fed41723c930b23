package main

// @title MotorMarket Resolver API
// @version 1.0
// @description League marketplace and sealed-bid auction resolution service.
// @BasePath /api/v1

//go:generate swag init -g main.go -o ../../docs
