// Package trips holds the trip creation wizard: the editable draft, its
// two validation steps, assembly of the create-trip payload and the
// upcoming/past split of a transporter's trips.
package trips
