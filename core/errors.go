// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidUpload indicates an UploadedFile failed validation.
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrEmptyFilename indicates the uploaded file has no name.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyFile indicates the uploaded file has no content.
	ErrEmptyFile = errors.New("file content cannot be empty")

	// ErrEmptyMediaType indicates the uploaded file declares no MIME type.
	ErrEmptyMediaType = errors.New("media type cannot be empty")
)
