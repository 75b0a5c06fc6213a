package storefront

const collectionDetailsQuery = `#graphql
query CollectionDetails(
  $handle: String
  $id: ID
  $cursor: String
  $filters: [ProductFilter!]
  $sortKey: ProductCollectionSortKeys!
  $reverse: Boolean
  $pageBy: Int!
  $collectionsFirst: Int!
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  collection(handle: $handle, id: $id) {
    id
    title
    description
    handle
    products(
      first: $pageBy
      after: $cursor
      filters: $filters
      sortKey: $sortKey
      reverse: $reverse
    ) {
      filters {
        id
        label
        type
        values {
          id
          label
          count
          input
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        id
        title
        publishedAt
        handle
        variants(first: 1) {
          nodes {
            id
            image {
              url
              altText
              width
              height
            }
            price {
              amount
              currencyCode
            }
            compareAtPrice {
              amount
              currencyCode
            }
            selectedOptions {
              name
              value
            }
            product {
              handle
              title
            }
          }
        }
      }
    }
  }
  collections(first: $collectionsFirst) {
    nodes {
      title
      handle
    }
  }
}
`

const metaobjectCollectionQuery = `#graphql
query MetaobjectCollection(
  $type: String!
  $handle: String!
  $field: String!
) {
  metaobject(handle: {type: $type, handle: $handle}) {
    id
    field(key: $field) {
      reference {
        ... on Collection {
          id
          handle
        }
      }
    }
  }
}
`
