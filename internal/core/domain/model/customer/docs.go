// Package customer holds the customer projection of the users table and the
// customer's saved addresses, the two read models attached to orders during
// enrichment.
package customer
