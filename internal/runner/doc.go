// Package runner ties the generator pipeline together: load packages, apply
// the config file, select record types, build plans and render files. The
// CLI is a thin layer over it.
package runner
