// Package view implements the controller shared by every utility page.
//
// A Controller is parameterised by a transform.Engine and holds the
// page's input and its last Result. State moves Idle -> Ready ->
// Success|Failed and back to Idle on clear. Output and error are a single
// tagged value so they can never disagree.
package view
