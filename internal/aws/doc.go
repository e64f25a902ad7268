// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws contains AWS-related helpers and adapters used by the source
// loader and commands that read fare documents from S3.
package aws
