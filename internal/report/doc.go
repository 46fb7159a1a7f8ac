// Package report renders resolved repositories for terminal and script consumption.
package report
