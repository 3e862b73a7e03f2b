package model

const KeyLoggerError = "error"

type ContextKey string

const KeyContextLogger ContextKey = "logger"
