// Package config reads and writes the repository configuration file
// .stepwise.yml, which is committed together with the tutorial.
package config
