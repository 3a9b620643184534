// Package config defines the format-agnostic configuration model for the
// gate, along with the Loader interface for reading it from a file. The
// model only carries overrides; every field has a working default, and a
// missing config file is not an error. The concrete HCL implementation
// lives in the hclconfig package.
package config
