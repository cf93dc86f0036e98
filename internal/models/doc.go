// Package models defines the domain types shared by the smart playlist manager.
//
// Types fall into three groups:
//
//  1. Upstream views, read-only copies of YouTube Data API resources:
//     - [Channel] : a channel and its uploads playlist
//     - [Subscription] : a channel the authenticated account follows
//     - [PlaylistItem] : one membership record of a playlist
//     - [Video] : the parsed view of an upload the sweep works with
//
//  2. Rules, loaded once at startup and never mutated:
//     - [RuleSet] : the smart playlist file, rule name to [RuleSpec]
//     - [Rule] : one named rule, target playlist and source channels
//
//  3. History, written after each successful insert:
//     - [Addition]
package models
