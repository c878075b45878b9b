// Package models defines the GORM models of the inventory tables.
package models
