// Package services contains the application services behind the colis
// client screens: authentication and session routing, trip publishing and
// search, and user/transporter profiles.
package services
