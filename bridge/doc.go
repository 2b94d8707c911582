// Package bridge runs the command host: it registers the built-in commands and
// serves them over stdio or HTTP as configured on the command line.
//
// A frontend typically spawns the host binary with the stdio transport:
//
//	cmdbridge-host -T stdio
//
// or connects to it over HTTP:
//
//	cmdbridge-host -T http -p 5000 --auth-secret $SECRET
package bridge
