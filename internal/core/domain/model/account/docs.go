// Package account contains the Account aggregate and the closed Role
// enumeration.
//
// Every caller of the system is one of four fixed roles: requester, courier,
// dispatcher, or administrator. Roles never change the lifecycle rules
// themselves; they feed the authorization table in the domain services
// package, which decides who may request which transition.
package account
