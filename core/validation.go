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

import "fmt"

// ValidateUploadedFile validates an UploadedFile according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Data must not be empty
//   - MediaType must not be empty
//
// NOT validated here:
//   - Whether the MediaType is one of the supported types; that is a
//     dispatch decision made by the document loader, not a validity rule,
//     so an unrecognized type surfaces as an unsupported-type outcome
//     rather than a rejected upload.
func ValidateUploadedFile(file *UploadedFile) error {
	if file == nil {
		return fmt.Errorf("%w: file is nil", ErrInvalidUpload)
	}

	if file.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrEmptyFilename)
	}

	if len(file.Data) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrEmptyFile)
	}

	if file.MediaType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUpload, ErrEmptyMediaType)
	}

	return nil
}
