// Package services defines the [Client] port the smart playlist manager uses to talk to YouTube, and implements it.
//
// # Client Interface
//
// [Client] exposes the four Data API operations the manager consumes: channels.list, subscriptions.list (mine=true),
// playlistItems.list and playlistItems.insert. List methods return a single [Page]; callers walk pages with [Pages].
//
// # Pagination
//
// [Pages] turns any [PageFunc] into a lazy iter.Seq2 that follows NextPageToken, optionally capped at a page count.
// Errors are yielded to the consumer and end the sequence. Retrying is left to the caller.
//
// # YouTube Implementation
//
// [YouTubeService] wraps google.golang.org/api/youtube/v3. Requests share a [rate.Limiter].
// Upstream failures are mapped onto the shared sentinel errors:
//   - [shared.ErrTokenExpired] : 401 from the API or a failed token refresh
//   - [shared.ErrAuthFailed] : 403, usually quota or missing scope
//   - [shared.ErrPlaylistNotFound] : 404
//   - [shared.ErrAPIRequest] : anything else
//
// # Credentials
//
// [Credentials] bundles the OAuth client ID/secret with the user's token in one JSON file.
// [NewOAuthHTTPClient] builds an authorized [http.Client] from that file and writes refreshed tokens back to it.
package services
