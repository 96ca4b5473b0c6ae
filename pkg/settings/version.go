package settings

var version = "dev"
