// Package store holds the user collection store: the single owner of the
// in-memory list of users and of its loading/error/last-fetched status.
//
// All mutations go through FetchAll, AddLocal, Update and Remove. Readers get
// copies via State and can Subscribe to every published state. The store
// guarantees that Loading and a non-empty Error are never observed together
// and that LastFetched only moves on a successful full fetch.
//
// A FetchAll issued while another one is in flight cancels the older call and
// discards its result, so the published list always comes from one response.
package store
