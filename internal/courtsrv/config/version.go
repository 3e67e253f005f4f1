package config

// Version is the configuration file format version this build understands.
const Version = "0.1.0"
